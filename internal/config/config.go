// Package config loads environment driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Storage backends.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// SSO modes.
const (
	SSOSimulated = "simulated"
	SSOOIDC      = "oidc"
)

// Config captures environment driven configuration values for the server.
type Config struct {
	Addr   string
	WebDir string

	Storage     string // file, memory or postgres
	DataDir     string // slot directory for file storage
	DatabaseURL string // required for postgres storage

	SSOMode       string // simulated or oidc
	OIDCIssuer    string
	OIDCClientID  string
	OIDCSecret    string
	OIDCRedirect  string
	DebugPassHash string // bcrypt hash; empty disables the debug login

	RedirectDelay time.Duration
	ValidateDelay time.Duration
	SubmitDelay   time.Duration
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults; values that are present but
// unusable are collected and reported together.
func Load() (Config, error) {
	cfg := Config{
		Addr:          ":8080",
		WebDir:        "web",
		Storage:       StorageFile,
		DataDir:       "data",
		SSOMode:       SSOSimulated,
		RedirectDelay: time.Second,
		ValidateDelay: 1500 * time.Millisecond,
		SubmitDelay:   time.Second,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if v := strings.TrimSpace(os.Getenv("VBAY_ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("VBAY_WEB_DIR")); v != "" {
		cfg.WebDir = v
	}

	if v := strings.TrimSpace(os.Getenv("VBAY_STORAGE")); v != "" {
		switch v {
		case StorageFile, StorageMemory, StoragePostgres:
			cfg.Storage = v
		default:
			invalid = append(invalid, "VBAY_STORAGE")
		}
	}
	if v := strings.TrimSpace(os.Getenv("VBAY_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.Storage == StoragePostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if v := strings.TrimSpace(os.Getenv("VBAY_SSO_MODE")); v != "" {
		switch v {
		case SSOSimulated, SSOOIDC:
			cfg.SSOMode = v
		default:
			invalid = append(invalid, "VBAY_SSO_MODE")
		}
	}
	cfg.OIDCIssuer = strings.TrimSpace(os.Getenv("OIDC_ISSUER"))
	cfg.OIDCClientID = strings.TrimSpace(os.Getenv("OIDC_CLIENT_ID"))
	cfg.OIDCSecret = strings.TrimSpace(os.Getenv("OIDC_CLIENT_SECRET"))
	cfg.OIDCRedirect = strings.TrimSpace(os.Getenv("OIDC_REDIRECT_URL"))
	if cfg.SSOMode == SSOOIDC {
		if cfg.OIDCIssuer == "" {
			missing = append(missing, "OIDC_ISSUER")
		}
		if cfg.OIDCClientID == "" {
			missing = append(missing, "OIDC_CLIENT_ID")
		}
		if cfg.OIDCSecret == "" {
			missing = append(missing, "OIDC_CLIENT_SECRET")
		}
		if cfg.OIDCRedirect == "" {
			missing = append(missing, "OIDC_REDIRECT_URL")
		}
	}

	cfg.DebugPassHash = strings.TrimSpace(os.Getenv("VBAY_DEBUG_LOGIN_HASH"))

	for _, d := range []struct {
		key string
		dst *time.Duration
	}{
		{"VBAY_REDIRECT_DELAY", &cfg.RedirectDelay},
		{"VBAY_VALIDATE_DELAY", &cfg.ValidateDelay},
		{"VBAY_SUBMIT_DELAY", &cfg.SubmitDelay},
	} {
		v := strings.TrimSpace(os.Getenv(d.key))
		if v == "" {
			continue
		}
		dur, err := time.ParseDuration(v)
		if err != nil || dur < 0 {
			invalid = append(invalid, d.key)
			continue
		}
		*d.dst = dur
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
