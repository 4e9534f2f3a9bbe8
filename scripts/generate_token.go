package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Claims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Generates an admin JWT for the management API. Tenants never hold JWTs;
// they authenticate to the proxy with API keys.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	userID := flag.String("user", "", "User ID for the token")
	roles := flag.String("roles", "admin", "Comma-separated list of roles")
	expirationHours := flag.Int("exp", 24, "Token expiration in hours")
	flag.Parse()

	if *userID == "" {
		log.Fatal("User ID is required")
	}

	rolesList := []string{}
	if *roles != "" {
		rolesList = strings.Split(*roles, ",")
	}

	claims := &Claims{
		UserID: *userID,
		Roles:  rolesList,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(*expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	jwtSecret := []byte(getEnvOrDefault("JWT_SECRET_KEY", "your-default-secret-key"))

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Printf("Generated JWT Token:\n%s\n", tokenString)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
