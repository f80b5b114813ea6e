package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arnavshah/shift-roster-go/pkg/auth"
	"github.com/arnavshah/shift-roster-go/pkg/config"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <userID>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if os.Getenv("API_MASTER_SECRET") == "" && !cfg.IsProduction() {
		fmt.Fprintln(os.Stderr, "Warning: API_MASTER_SECRET not set, signing with the development default")
	}

	userID := os.Args[1]
	if strings.Contains(userID, ".") {
		fmt.Println("Error: userID must not contain '.'")
		os.Exit(1)
	}
	keys := auth.NewKeys(cfg.JWTSecret, cfg.APIMasterSecret)
	fmt.Printf("Generated Key for %s:\n%s\n", userID, keys.GenerateHMACKey(userID))
}
