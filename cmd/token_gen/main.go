package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Shamanth-8/drones/internal/auth"
	"github.com/Shamanth-8/drones/internal/constants"
)

func main() {
	subject := flag.String("subject", "ops", "token subject")
	role := flag.String("role", string(constants.RoleOperator), "operator or viewer")
	ttl := flag.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	flag.Parse()

	secret := os.Getenv("OPERATOR_TOKEN_SECRET")
	if secret == "" {
		log.Fatal("OPERATOR_TOKEN_SECRET is not set")
	}

	r := constants.OperatorRole(*role)
	if r != constants.RoleOperator && r != constants.RoleViewer {
		log.Fatalf("unknown role %q", *role)
	}

	token, expiresAt, err := auth.NewTokenSigner([]byte(secret)).Issue(*subject, r, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println("Operator Token:", token)
	fmt.Println("Expires:", expiresAt.Format(time.RFC3339))
}
