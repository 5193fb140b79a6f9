package cliparse

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kelseyhightower/envconfig"
)

// SMTPConfig is the outbound mail transport configuration.
// Field names follow the environment variables the original deployment used.
type SMTPConfig struct {
	Host     string `envconfig:"EMAIL_HOST"`
	Port     int    `envconfig:"EMAIL_PORT" default:"587"`
	User     string `envconfig:"EMAIL_USER"`
	Password string `envconfig:"EMAIL_PASSWORD"`
	From     string `envconfig:"EMAIL_FROM"`
}

// AdminConfig is the single shared admin credential, read once at startup.
// Password may be either a plaintext secret or an Argon2id PHC string
// ($argon2id$...), see the auth package.
type AdminConfig struct {
	Username string `envconfig:"ADMIN_USERNAME"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}

type Config struct {
	Port         int
	DatabaseType string
	DatabaseURL  string
	DataDir      string
	SiteURL      string
	NoMail       bool
	Admin        AdminConfig
	SMTP         SMTPConfig
}

// ParseFlags validates flags and fills in environment-backed settings
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("citazioni", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or SQLite path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.DataDir, "data-dir", "", "Directory for the maintenance file and submission exports")
	fs.BoolVar(&cfg.NoMail, "no-mail", false, "Log confirmation emails instead of sending them (dev)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("DATA_DIR")
		if cfg.DataDir == "" {
			cfg.DataDir = "."
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = filepath.Join(cfg.DataDir, "quotes.db")
	}

	// Environment-only settings
	cfg.SiteURL = os.Getenv("SITE_URL")
	if cfg.SiteURL == "" {
		return Config{}, errors.New("SITE_URL required")
	}

	if err := envconfig.Process("", &cfg.Admin); err != nil {
		return Config{}, err
	}
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		return Config{}, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD required")
	}

	if err := envconfig.Process("", &cfg.SMTP); err != nil {
		return Config{}, err
	}
	if !cfg.NoMail {
		if cfg.SMTP.Host == "" || cfg.SMTP.User == "" || cfg.SMTP.Password == "" || cfg.SMTP.From == "" {
			return Config{}, errors.New("EMAIL_HOST, EMAIL_USER, EMAIL_PASSWORD and EMAIL_FROM required (or run with -no-mail)")
		}
	}

	return cfg, nil
}
