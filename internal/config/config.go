// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config
// file, and environment variables, applied in that order.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	// When empty the server keeps its data in memory.
	DatabaseDSN string

	// JWTSecret signs access tokens.
	JWTSecret string

	// TokenTTL is the lifetime of an access token.
	TokenTTL time.Duration

	// LogLevel is the minimum zap level ("debug", "info", ...).
	LogLevel string

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string
	TLSKey  string

	// Config is the path to the Config file.
	Config string
}

// fileOptions is the JSON shape of the config file. Absent keys leave
// the flag values untouched.
type fileOptions struct {
	Address     *string `json:"address"`
	DatabaseDSN *string `json:"database_dsn"`
	JWTSecret   *string `json:"jwt_secret"`
	TokenTTL    *string `json:"token_ttl"`
	LogLevel    *string `json:"log_level"`
	TLSCert     *string `json:"tls_cert"`
	TLSKey      *string `json:"tls_key"`
}

// Parse parses the process arguments and environment. It exits the
// process if the configuration cannot be loaded.
func Parse() *Options {
	opts, err := Load(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return opts
}

// Load builds Options from args, the config file they (or CONFIG) name,
// and the variables returned by getenv.
func Load(args []string, getenv func(string) string) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.JWTSecret, "s", "", "secret for signing access tokens")
	fs.DurationVar(&options.TokenTTL, "ttl", time.Hour, "access token lifetime")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&options.TLSKey, "tls-key", "", "path to TLS private key")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath := getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if err := options.readFile(options.Config); err != nil {
			return nil, err
		}
	}

	for env, dst := range map[string]*string{
		"SERVER_ADDRESS": &options.Port,
		"DATABASE_DSN":   &options.DatabaseDSN,
		"JWT_SECRET":     &options.JWTSecret,
		"LOG_LEVEL":      &options.LogLevel,
		"TLS_CERT":       &options.TLSCert,
		"TLS_KEY":        &options.TLSKey,
	} {
		if v := getenv(env); v != "" {
			*dst = v
		}
	}
	if v := getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_TTL: %w", err)
		}
		options.TokenTTL = ttl
	}

	if options.JWTSecret == "" {
		return nil, errors.New("a JWT secret is required (-s or JWT_SECRET)")
	}
	if (options.TLSCert == "") != (options.TLSKey == "") {
		return nil, errors.New("TLS needs both a certificate and a key")
	}
	return options, nil
}

// readFile applies the keys present in the JSON file at path.
// A missing file is not an error.
func (o *Options) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	var f fileOptions
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}

	for _, kv := range []struct{ src, dst *string }{
		{f.Address, &o.Port},
		{f.DatabaseDSN, &o.DatabaseDSN},
		{f.JWTSecret, &o.JWTSecret},
		{f.LogLevel, &o.LogLevel},
		{f.TLSCert, &o.TLSCert},
		{f.TLSKey, &o.TLSKey},
	} {
		if kv.src != nil {
			*kv.dst = *kv.src
		}
	}
	if f.TokenTTL != nil {
		ttl, err := time.ParseDuration(*f.TokenTTL)
		if err != nil {
			return fmt.Errorf("token_ttl: %w", err)
		}
		o.TokenTTL = ttl
	}
	return nil
}
