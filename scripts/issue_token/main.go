// Command issue_token prints a bearer token for a local test user.
// The signing secret is read from JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"storefront/internal/auth"
)

func main() {
	userID := flag.String("user", "", "user ID placed in the token subject")
	email := flag.String("email", "", "email claim")
	issuer := flag.String("issuer", envOr("JWT_ISSUER", "storefront"), "token issuer")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET must be set")
		os.Exit(1)
	}
	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(1)
	}

	token, err := auth.NewAuthenticator(secret, *issuer, *ttl).Issue(auth.Identity{UserID: *userID, Email: *email})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
