package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Output format constants
	FormatJSON = "json"
	FormatText = "text"

	// Default values
	DefaultWorkers     = 4
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB
)

// Config holds all configuration for the field extractor.
type Config struct {
	// TesseractPath is the OCR binary; empty means look it up on PATH.
	TesseractPath string

	// ContentKind overrides content-kind detection ("pdf", "html",
	// "image/png", ...). Empty means detect from the file extension.
	ContentKind string

	// Workers bounds per-page parallelism for image documents.
	Workers int

	// OutputFormat is "json" or "text".
	OutputFormat string

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum input document size in bytes
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		TesseractPath: "",
		ContentKind:   "",
		Workers:       DefaultWorkers,
		OutputFormat:  FormatJSON,
		Version:       "1.0.0",
		LogLevel:      DefaultLogLevel,
		MaxFileSize:   DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("FORMSENSE")
	viper.AutomaticEnv()

	viper.SetDefault("tesseract", cfg.TesseractPath)
	viper.SetDefault("kind", cfg.ContentKind)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("format", cfg.OutputFormat)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("tesseract", cfg.TesseractPath, "Path to the tesseract binary (default: lookup on PATH)")
	pflag.String("kind", cfg.ContentKind, "Content kind override (pdf, html, image/png, ...)")
	pflag.Int("workers", cfg.Workers, "Number of pages processed concurrently")
	pflag.String("format", cfg.OutputFormat, "Output format: json, text")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum input document size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("tesseract", pflag.Lookup("tesseract"))
	_ = viper.BindPFlag("kind", pflag.Lookup("kind"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nformsense - extract normalized form-field descriptors from documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s form.pdf                       # extract from a scanned PDF\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --kind=html application.html   # extract from HTML markup\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --format=text --workers=8 big-form.pdf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  FORMSENSE_TESSERACT    Path to the tesseract binary\n")
		fmt.Fprintf(os.Stderr, "  FORMSENSE_KIND         Content kind override\n")
		fmt.Fprintf(os.Stderr, "  FORMSENSE_WORKERS      Page worker count\n")
		fmt.Fprintf(os.Stderr, "  FORMSENSE_FORMAT       Output format\n")
		fmt.Fprintf(os.Stderr, "  FORMSENSE_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  FORMSENSE_MAXFILESIZE  Maximum input size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.TesseractPath = viper.GetString("tesseract")
	cfg.ContentKind = viper.GetString("kind")
	cfg.Workers = viper.GetInt("workers")
	cfg.OutputFormat = viper.GetString("format")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	if c.OutputFormat != FormatJSON && c.OutputFormat != FormatText {
		return fmt.Errorf("invalid output format: %s (must be json or text)", c.OutputFormat)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Tesseract: %q, Kind: %q, Workers: %d, Format: %s, LogLevel: %s, MaxFileSize: %d}",
		c.TesseractPath, c.ContentKind, c.Workers, c.OutputFormat, c.LogLevel, c.MaxFileSize)
}
