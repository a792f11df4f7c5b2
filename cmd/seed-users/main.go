// seed-users creates the default login set (ips_user, trio_user, admin)
// and ensures the MIS tables exist.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-users
//
// Default passwords can be overridden via SEED_PASSWORD_<USERNAME>.
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/mis_backend/config"
	"bitbucket.org/mmdatafocus/mis_backend/models"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	if err := models.SeedDefaultUsers(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed users: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Seeded default users: ips_user, trio_user, admin")
}
