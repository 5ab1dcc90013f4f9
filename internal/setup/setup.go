// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/platefeed/platefeed/internal/argon2id"
	"github.com/platefeed/platefeed/internal/catalog"
	"github.com/platefeed/platefeed/internal/config"
	"github.com/platefeed/platefeed/internal/database"
	"github.com/platefeed/platefeed/internal/email"
	"github.com/platefeed/platefeed/internal/env"
	"github.com/platefeed/platefeed/internal/filestore"
	pfHttp "github.com/platefeed/platefeed/internal/http"
	"github.com/platefeed/platefeed/internal/password"
	"github.com/platefeed/platefeed/internal/tokenstore"
)

// Database connects the pool and applies the schema when missing.
func Database(ctx context.Context, conf *config.Config) (*database.Database, error) {
	pool, err := pgxpool.New(ctx, conf.Database.URL())
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}

	db := database.NewDatabase(pool)
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	return db, nil
}

// TokenStore connects the logout denylist. Returns nil when redis is
// not configured, revocation then degrades to token expiry.
func TokenStore(ctx context.Context, conf *config.Config) (tokenstore.Denylist, error) {
	if conf.Redis.Addr == "" {
		return nil, nil
	}

	store := tokenstore.New(conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connecting token store: %w", err)
	}
	return store, nil
}

// FileStore prepares the local media directory.
func FileStore(conf *config.Config) (*filestore.FileStore, error) {
	baseDir, err := filepath.Abs(conf.FileStore.Directory)
	if err != nil {
		return nil, fmt.Errorf("resolving filestore path: %w", err)
	}
	urlPrefix := conf.FileStore.URLPrefix
	if urlPrefix == "" {
		urlPrefix = filestore.DefaultURLPrefix
	}
	return filestore.New(baseDir, urlPrefix), nil
}

// SMTP builds the mail sender, nil when mail is not configured.
func SMTP(conf *config.Config) email.Sender {
	if conf.SMTP == nil {
		return nil
	}
	return email.NewSMTPSender(email.Config{
		Host:     conf.SMTP.Host,
		Port:     conf.SMTP.Port,
		Username: conf.SMTP.Username,
		Password: conf.SMTP.Password,
		From:     conf.SMTP.From,
	})
}

// Admin setups an admin user if one does not exist. Requires env.Database.
func Admin(ctx context.Context, env *env.Env) error {
	admin := env.Config.Admin
	if admin == nil {
		env.Logger.Info("admin credentials not configured, skipping admin setup")
		return nil
	}

	// Validate email and password
	if _, err := mail.ParseAddress(admin.Email); err != nil {
		return fmt.Errorf("parsing admin email: %w", err)
	}
	if err := password.ValidatePassword(admin.Password); err != nil {
		return fmt.Errorf("validating admin password: %w", err)
	}

	// Check admin count
	count, err := env.Database.GetAdminCount(ctx)
	if err != nil {
		return fmt.Errorf("getting admin count: %w", err)
	}
	if count > 0 {
		env.Logger.Info("admin already setup, skipping setup")
		return nil
	}

	hashedPassword, err := argon2id.EncodeHash(admin.Password, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	// Create admin
	_, err = env.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        admin.Email,
		Username:     admin.Username,
		FirstName:    "admin",
		LastName:     "admin",
		PasswordHash: hashedPassword,
		Role:         database.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	env.Logger.Info("successfully setup admin!")

	return nil
}

// Catalog seeds the tag and ingredient reference data from the
// configured sources.
func Catalog(ctx context.Context, env *env.Env, client *pfHttp.HTTP) error {
	sources := env.Config.Catalog
	loader := catalog.NewLoader(env.Database, client)

	if sources.TagsSource != "" {
		count, err := loader.SeedTags(ctx, sources.TagsSource)
		if err != nil {
			return fmt.Errorf("seeding tags: %w", err)
		}
		env.Logger.Info("seeded tags", slog.Int("count", count))
	}
	if sources.IngredientsSource != "" {
		count, err := loader.SeedIngredients(ctx, sources.IngredientsSource)
		if err != nil {
			return fmt.Errorf("seeding ingredients: %w", err)
		}
		env.Logger.Info("seeded ingredients", slog.Int("count", count))
	}
	return nil
}
