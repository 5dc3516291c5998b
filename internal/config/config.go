// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ErrAPIURLMissing    = errors.New("the API_URL environment variable must be set")
	ErrAPIURLInvalid    = errors.New("the API_URL environment variable is not a valid URL")
	ErrJWTSecretMissing = errors.New("the JWT_SECRET environment variable must be set")
	ErrPortInvalid      = errors.New("the PORT environment variable must be a port number between 1 and 65535")
	ErrDBNameMissing    = errors.New("DB_NAME must be set when DB_HOST is set")
)

// Config holds all settings for the backend.
type Config struct {
	APIURL      *url.URL
	Port        int
	GinMode     string
	LogFormat   string // "human" or "json", empty means it depends on GinMode
	Database    Database
	JWTSecret   []byte
	CORSOrigins []string
	EnablePprof bool
}

// Database holds the connection settings. Postgres is used when Host is set,
// SQLite with SQLitePath otherwise.
type Database struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

// Postgres reports if the PostgreSQL database is configured.
func (d Database) Postgres() bool {
	return d.Host != ""
}

// DSN returns the connection string for the configured PostgreSQL database.
func (d Database) DSN() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s", d.Host, d.User, d.Password, d.Name)
	if d.Port != "" {
		dsn = fmt.Sprintf("%s port=%s", dsn, d.Port)
	}

	return dsn
}

// Load reads the configuration. If a .env file exists in the working
// directory, it is loaded first. Variables already set in the environment
// take precedence over the file.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load .env file: %w", err)
	}

	return FromEnv()
}

// FromEnv reads the configuration from the environment only.
func FromEnv() (Config, error) {
	c := Config{
		GinMode:     getenv("GIN_MODE", "release"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		CORSOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof: os.Getenv("ENABLE_PPROF") == "true",
		Database: Database{
			Host:       os.Getenv("DB_HOST"),
			Port:       os.Getenv("DB_PORT"),
			User:       os.Getenv("DB_USER"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       os.Getenv("DB_NAME"),
			SQLitePath: getenv("SQLITE_PATH", "data/gorm.db"),
		},
	}

	var errs []error

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok || apiURL == "" {
		errs = append(errs, ErrAPIURLMissing)
	} else {
		u, err := url.Parse(apiURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ErrAPIURLInvalid)
		} else {
			// Links are built by appending paths
			u.Path = strings.TrimRight(u.Path, "/")
			c.APIURL = u
		}
	}

	port, err := strconv.Atoi(getenv("PORT", "8080"))
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, ErrPortInvalid)
	}
	c.Port = port

	if len(c.JWTSecret) == 0 {
		errs = append(errs, ErrJWTSecretMissing)
	}

	if c.Database.Postgres() && c.Database.Name == "" {
		errs = append(errs, ErrDBNameMissing)
	}

	return c, errors.Join(errs...)
}

// HumanLogs reports if logs should be written with the console writer.
func (c Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}

	return c.LogFormat == "human"
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}
