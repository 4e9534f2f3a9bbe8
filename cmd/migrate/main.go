package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ptmnhat/grafana-proxy/internal/api/dto"
	"github.com/ptmnhat/grafana-proxy/internal/config"
	"github.com/ptmnhat/grafana-proxy/internal/domain"
	"github.com/ptmnhat/grafana-proxy/internal/hasher"
	"github.com/ptmnhat/grafana-proxy/internal/repository/postgres"
	"github.com/ptmnhat/grafana-proxy/internal/service"
	"github.com/ptmnhat/grafana-proxy/pkg/logger"
)

// Uniqueness is case-insensitive, so plain gorm unique tags are not enough;
// the expression indexes below enforce it at the database level.
var uniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tenants_name_lower ON tenants (LOWER(name))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tenants_short_code_lower ON tenants (LOWER(short_code))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_permissions_tenant_dashboard_lower
		ON tenant_dashboard_permissions (tenant_id, LOWER(dashboard_uid))`,
}

func main() {
	seed := flag.Bool("seed", false, "Seed a demo tenant and print its API keys")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	db := dbConnections.Writer

	if err := db.AutoMigrate(
		&domain.Tenant{},
		&domain.APIKey{},
		&domain.DashboardPermission{},
	); err != nil {
		appLogger.Fatal("Migration failed", err)
	}

	for _, stmt := range uniqueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			appLogger.Fatal("Index creation failed", err)
		}
	}

	appLogger.Info("Migration complete")

	if *seed {
		seedDemoTenant(dbConnections)
	}
}

// seedDemoTenant creates a demo tenant with a dashboard grant and prints the
// generated keys. This is the only time the plaintext keys are available.
func seedDemoTenant(dbConnections *config.DatabaseConnections) {
	repo := postgres.NewPostgresRepository(dbConnections)
	tenants := service.NewTenantService(repo, hasher.NewArgon2Hasher())

	ctx := context.Background()

	tenant, err := tenants.Create(ctx, dto.CreateTenantRequest{
		Name:      "Demo Tenant",
		ShortCode: "DEMO",
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if _, err := tenants.GrantPermission(ctx, tenant.ID, dto.AddDashboardPermissionRequest{
		DashboardUID: "demo-dashboard",
	}); err != nil {
		log.Fatalf("Seeding permission failed: %v", err)
	}

	fmt.Printf("Seeded tenant %q (id=%d) with access to dashboard %q\n", tenant.Name, tenant.ID, "demo-dashboard")
	fmt.Println("API keys (store them now, they are not retrievable later):")
	for i, key := range tenant.GeneratedAPIKeys {
		fmt.Printf("  key[%d]: %s\n", i, key)
	}
}
