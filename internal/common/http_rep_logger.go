package common

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/Shamanth-8/drones/internal/logging"
)

// LogHTTPRequest dumps an outgoing provider request at debug level.
// Authorization headers are redacted.
func LogHTTPRequest(req *http.Request) {
	if !logging.DebugEnabled() {
		return
	}

	var bodyCopy []byte
	if req.Body != nil {
		bodyCopy, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}

	clone := req.Clone(req.Context())
	if clone.Header.Get("Authorization") != "" {
		clone.Header.Set("Authorization", "[redacted]")
	}
	if bodyCopy != nil {
		clone.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}

	dump, err := httputil.DumpRequestOut(clone, true)
	if err != nil {
		logging.Warn("Failed to dump HTTP request", "error", err)
	} else {
		logging.Debug("HTTP request dump", "request", string(dump))
	}

	// req.Body may be read again by the transport
	if bodyCopy != nil {
		req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}
}
