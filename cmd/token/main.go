// Command token mints a signed development token for the games API.
//
//	go run ./cmd/token -sub alice -scope "games:read games:write" -ttl 1h
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gamestore-backend/pkg/jwt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "dev", "token subject")
	scope := flag.String("scope", "games:read games:write", "space separated capabilities")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	manager := jwt.NewManager(secret, os.Getenv("JWT_ISSUER"), os.Getenv("JWT_AUDIENCE"))
	token, err := manager.GenerateToken(*subject, strings.Fields(*scope), *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign token")
	}

	fmt.Println(token)
}
