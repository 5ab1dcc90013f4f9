// Package config contains utilities for loading configs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	defaultConfigPath = "/data/platefeed.yaml"
	minSecretBytes    = 32
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

type Server struct {
	Port    int    `yaml:"port" validate:"omitempty,gt=0,lte=65535"`
	BaseURL string `yaml:"base_url"`
}

type Secret struct {
	Value   string `yaml:"value" validate:"required"`
	Version string `yaml:"version"`
}

func (s Secret) Validate() error {
	if len([]byte(s.Value)) < minSecretBytes {
		return errors.New("secret should be at least 32 bytes")
	}
	return nil
}

type Database struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required,gt=0,lte=65535"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password" validate:"required"`
	Name     string `yaml:"name" validate:"required"`
}

// URL renders the pgx connection string.
func (d Database) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type FileStore struct {
	Directory string `yaml:"directory" validate:"required"`
	URLPrefix string `yaml:"url_prefix"`
}

type SMTP struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required,gt=0,lte=65535"`
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" validate:"required"`
	From     string `yaml:"from" validate:"required,email"`
}

type Admin struct {
	Email    string `yaml:"email" validate:"required,email"`
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

// Catalog points at the tag and ingredient seed documents loaded at
// boot. Each source may be an http(s) URL or a local file path.
type Catalog struct {
	TagsSource        string `yaml:"tags_source"`
	IngredientsSource string `yaml:"ingredients_source"`
}

type Config struct {
	Env       string    `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
	Server    Server    `yaml:"server"`
	Secret    Secret    `yaml:"secret"`
	Database  Database  `yaml:"database"`
	Redis     Redis     `yaml:"redis"`
	FileStore FileStore `yaml:"filestore"`
	SMTP      *SMTP     `yaml:"smtp"`
	Admin     *Admin    `yaml:"admin"`
	Catalog   Catalog   `yaml:"catalog"`
}

// IsProd reports whether the config targets a production deployment.
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// LoadConfig reads the YAML config file, applies environment variable
// overrides, and validates the result. The file may be absent when the
// environment provides everything required.
func LoadConfig() (*Config, error) {
	path := os.Getenv("PLATEFEED_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	config := &Config{
		Env: EnvDev,
		Server: Server{
			Port: 8080,
		},
		Secret: Secret{
			Version: "1",
		},
		FileStore: FileStore{
			URLPrefix: "/media",
		},
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// env-only configuration
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnvOverrides(c *Config) {
	setString(&c.Env, "PLATEFEED_ENV")
	setInt(&c.Server.Port, "PLATEFEED_PORT")
	setString(&c.Server.BaseURL, "BASE_URL")

	setString(&c.Secret.Value, "APP_SECRET")
	setString(&c.Secret.Version, "APP_SECRET_VERSION")

	setString(&c.Database.Host, "DATABASE_HOST")
	setInt(&c.Database.Port, "DATABASE_PORT")
	setString(&c.Database.User, "DATABASE_USER")
	setString(&c.Database.Password, "DATABASE_PASSWORD")
	setString(&c.Database.Name, "DATABASE_NAME")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")

	setString(&c.FileStore.Directory, "FILESTORE_DIRECTORY")
	setString(&c.FileStore.URLPrefix, "FILESTORE_URL_PREFIX")

	setString(&c.Catalog.TagsSource, "CATALOG_TAGS_SOURCE")
	setString(&c.Catalog.IngredientsSource, "CATALOG_INGREDIENTS_SOURCE")

	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		if c.Admin == nil {
			c.Admin = &Admin{}
		}
		c.Admin.Email = email
		setString(&c.Admin.Username, "ADMIN_USERNAME")
		setString(&c.Admin.Password, "ADMIN_PASSWORD")
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

func validate(c *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	if err := c.Secret.Validate(); err != nil {
		return fmt.Errorf("validating secret: %w", err)
	}
	return nil
}
