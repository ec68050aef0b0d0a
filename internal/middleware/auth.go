package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Shamanth-8/drones/internal/auth"
	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
)

// OperatorAuth guards mutating routes. With a nil signer auth is disabled
// and every caller gets local operator claims.
func OperatorAuth(signer *auth.TokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			if signer == nil {
				ctx := auth.SetUserClaims(r.Context(), &auth.LocalClaims{SourceValue: constants.RequestSourceAPI})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondError(w, start, errors.New("missing operator token"), "", http.StatusUnauthorized)
				return
			}

			claims, err := signer.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logging.Warn("Rejected operator token",
					"request_id", auth.GetRequestID(r.Context()),
					"error", err,
				)
				common.RespondError(w, start, errors.New("invalid operator token"), "", http.StatusUnauthorized)
				return
			}
			if !claims.CanMutate() {
				common.RespondError(w, start, errors.New("operator role required"), "", http.StatusForbidden)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
