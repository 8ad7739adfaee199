package main

import (
	"os"

	"github.com/SscSPs/mma_accounts/internal/commands"
)

// @title MMA Accounts API
// @version 1.0
// @description Account name and code allocation with company scoped uniqueness checks.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
