// Command seed creates the default site content, the default access
// policies and optionally an administrator account.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/config"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/auth"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/database"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/repositories"
	"github.com/manishadtanii/varalobackendv.0/internal/logging"
	"github.com/manishadtanii/varalobackendv.0/internal/seed"
	"gorm.io/gorm/logger"
)

func main() {
	adminEmail := flag.String("admin-email", "", "create an administrator with this email")
	adminPassword := flag.String("admin-password", "", "password for -admin-email")
	role := flag.String("role", domain.RoleAdmin, "role for -admin-email (admin or super-admin)")
	skipContent := flag.Bool("skip-content", false, "do not seed pages and sections")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, logger.Warn)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	casbinSvc, err := auth.NewCasbinService(db)
	if err != nil {
		log.Fatalf("casbin: %v", err)
	}
	if seeded, err := casbinSvc.SeedDefaults(); err != nil {
		log.Fatalf("policies: %v", err)
	} else if seeded {
		lg.Info("seeded default policies")
	}

	seeder := seed.NewSeeder(
		repositories.NewPageRepository(db),
		repositories.NewSectionRepository(db),
		repositories.NewUserRepository(db),
		auth.NewPasswordService(cfg.BcryptCost),
		lg,
	)

	if !*skipContent {
		pages, err := seed.Load()
		if err != nil {
			log.Fatalf("seed data: %v", err)
		}
		res, err := seeder.SeedContent(ctx, pages)
		if err != nil {
			log.Fatalf("seed content: %v", err)
		}
		lg.Info("content seeded", "pages_created", res.PagesCreated, "sections_created", res.SectionsCreated)
	}

	if *adminEmail != "" {
		_, err := seeder.SeedAdmin(ctx, *adminEmail, *adminPassword, *role)
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			lg.Warn("admin user already exists", "email", *adminEmail)
		case err != nil:
			log.Fatalf("seed admin: %v", err)
		}
	}
}
