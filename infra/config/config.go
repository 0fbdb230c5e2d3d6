package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public creddit API.
const DefaultBaseURL = "https://api-creddit.eapi.joincoded.com"

// Config holds application-level configuration.
type Config struct {
	BaseURL  string        // e.g. "https://api-creddit.eapi.joincoded.com"
	LogFile  string        // "-" disables logging
	LogLevel zerolog.Level // parsed CREDDIT_LOG_LEVEL
}

// Load reads configuration from environment variables, falling back to an
// optional .env file (CREDDIT_ENV_FILE, default ".env"). Real environment
// variables win over the file.
//
//	CREDDIT_BASE_URL  : API base URL (default: DefaultBaseURL)
//	CREDDIT_LOG_FILE  : log file path (default: <user config dir>/creddit/creddit.log)
//	CREDDIT_LOG_LEVEL : zerolog level name (default: "info")
func Load() (Config, error) {
	envPath := os.Getenv("CREDDIT_ENV_FILE")
	if envPath == "" {
		envPath = ".env"
	}
	file, err := godotenv.Read(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading %s: %w", envPath, err)
	}
	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(file[key])
	}

	base := get("CREDDIT_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid CREDDIT_BASE_URL: must be an absolute URL")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return Config{}, fmt.Errorf("invalid CREDDIT_BASE_URL: scheme must be http or https")
	}
	base = strings.TrimRight(parsed.String(), "/")

	logFile := get("CREDDIT_LOG_FILE")
	if logFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine config directory: %w", err)
		}
		logFile = filepath.Join(dir, "creddit", "creddit.log")
	}

	level := zerolog.InfoLevel
	if raw := get("CREDDIT_LOG_LEVEL"); raw != "" {
		level, err = zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return Config{}, fmt.Errorf("invalid CREDDIT_LOG_LEVEL: %w", err)
		}
	}

	return Config{
		BaseURL:  base,
		LogFile:  logFile,
		LogLevel: level,
	}, nil
}
