// Command seed provisions an operator account. Users are never created
// through the API; this is the only write path for them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/internal/users"
	"github.com/bmimportados/backoffice-backend/pkg/config"
	"github.com/bmimportados/backoffice-backend/pkg/db"
	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/enums"
	"github.com/bmimportados/backoffice-backend/pkg/logger"
	"github.com/bmimportados/backoffice-backend/pkg/security"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	email := flag.String("email", "", "operator email")
	name := flag.String("name", "", "operator display name")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", string(enums.UserRoleAdmin), "operator role: admin|editor")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -email ... -name ... -password ... [-role admin|editor]")
		os.Exit(1)
	}

	userRole, err := enums.ParseUserRole(*role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid role: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := users.NewRepository(dbClient.DB())

	normalized := strings.ToLower(strings.TrimSpace(*email))
	if _, err := repo.FindByEmail(ctx, normalized); err == nil {
		fmt.Fprintf(os.Stderr, "user %s already exists\n", normalized)
		os.Exit(1)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Error(ctx, "failed to check existing user", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	created, err := repo.Create(ctx, &models.User{
		Email:        normalized,
		Name:         strings.TrimSpace(*name),
		PasswordHash: hash,
		Role:         userRole,
	})
	if err != nil {
		logg.Error(ctx, "failed to create user", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"user_id": created.ID.String(),
		"email":   created.Email,
		"role":    string(created.Role),
	})
	logg.Info(ctx, "operator account created")
}
