package config

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/brendan.keane/imdburl/pkg/errors"
	"github.com/brendan.keane/imdburl/internal/query"
)

// Flag names shared by the root command and LoadFromFlags
const (
	FlagConfig         = "config"
	FlagEnvFile        = "env-file"
	FlagBaseURL        = "base-url"
	FlagStrictEncoding = "strict-encoding"
	FlagNoAwards       = "no-awards"
	FlagExplain        = "explain"
	FlagWatch          = "watch"
	FlagVerbose        = "verbose"
	FlagDebug          = "debug"
	FlagLogFormat      = "log-format"

	FlagGenre          = "genre"
	FlagExcludeGenre   = "exclude-genre"
	FlagMinVotes       = "min-votes"
	FlagMaxVotes       = "max-votes"
	FlagMinRating      = "min-rating"
	FlagMaxRating      = "max-rating"
	FlagStartDate      = "start-date"
	FlagEndDate        = "end-date"
	FlagCountry        = "country"
	FlagExcludeCountry = "exclude-country"
	FlagMinRuntime     = "min-runtime"
	FlagMaxRuntime     = "max-runtime"
	FlagSortType       = "sort-type"
	FlagSortOption     = "sort-option"
	FlagTitleType      = "title-type"
	FlagExcludeKeyword = "exclude-keyword"
)

// Environment variables consulted when the matching flag is not set
const (
	EnvConfig    = "IMDBURL_CONFIG"
	EnvBaseURL   = "IMDBURL_BASE_URL"
	EnvLogFormat = "IMDBURL_LOG_FORMAT"
	EnvLogLevel  = "IMDBURL_LOG_LEVEL"
)

// DefaultEnvFile is loaded when present; a missing file is not an error
const DefaultEnvFile = ".env"

// StdinPath makes the query file be read from standard input
const StdinPath = "-"

// Config holds all application configuration
type Config struct {
	// Query file location; QueryPathSet is true when it was chosen explicitly
	QueryPath    string `validate:"required"`
	QueryPathSet bool
	EnvFile      string

	// Output settings
	BaseURL        string `validate:"omitempty,url"`
	StrictEncoding bool
	HasAwards      bool
	Explain        bool
	Watch          bool

	Verbose bool
	Debug   bool
	Logger  LoggerConfig

	// Filter values given on the command line, applied over the query file
	Overrides Overrides
}

// LoggerConfig holds the logging settings
type LoggerConfig struct {
	Level      string `validate:"oneof=trace debug info warn error"`
	Format     string `validate:"oneof=pretty json"`
	WithCaller bool
}

// contextKey is a custom type for context keys
type contextKey string

// configKey is the context key for storing config
const configKey contextKey = "config"

// WithConfig adds config to context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey).(*Config)
	return cfg, ok
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	return &Config{
		QueryPath: query.DefaultPath,
		EnvFile:   DefaultEnvFile,
		HasAwards: true,
		Logger: LoggerConfig{
			Level:  "warn",
			Format: "pretty",
		},
	}
}

// RegisterGlobalFlags defines the flags shared by every command
func RegisterGlobalFlags(flags *pflag.FlagSet) {
	flags.String(FlagEnvFile, DefaultEnvFile, "Environment file loaded before reading IMDBURL_* variables")
	flags.String(FlagBaseURL, "", "Search endpoint (default https://www.imdb.com/search/title/)")
	flags.Bool(FlagStrictEncoding, false, "Percent-encode commas and '!' in parameter values")
	flags.BoolP(FlagVerbose, "v", false, "Verbose logging")
	flags.Bool(FlagDebug, false, "Debug logging with caller information")
	flags.String(FlagLogFormat, "pretty", "Log format (pretty or json)")
}

// RegisterBuildFlags defines the query file, output and filter flags of the build command
func RegisterBuildFlags(flags *pflag.FlagSet) {
	flags.StringP(FlagConfig, "c", query.DefaultPath, "Query file (YAML), '-' reads standard input")
	flags.Bool(FlagNoAwards, false, "Do not append &has=awards")
	flags.Bool(FlagExplain, false, "Print a breakdown of every query parameter to stderr")
	flags.Bool(FlagWatch, false, "Rebuild the URL whenever the query file changes")

	flags.StringSlice(FlagGenre, nil, "Genre to include (repeatable)")
	flags.StringSlice(FlagExcludeGenre, nil, "Genre to exclude (repeatable)")
	flags.Int(FlagMinVotes, 0, "Minimum number of votes")
	flags.Int(FlagMaxVotes, 0, "Maximum number of votes")
	flags.Float64(FlagMinRating, 0, "Minimum user rating (1.0 to 10.0)")
	flags.Float64(FlagMaxRating, 0, "Maximum user rating (1.0 to 10.0)")
	flags.String(FlagStartDate, "", "Earliest release date (YYYY-MM-DD)")
	flags.String(FlagEndDate, "", "Latest release date (YYYY-MM-DD)")
	flags.StringArray(FlagCountry, nil, "Country name to include (repeatable)")
	flags.StringArray(FlagExcludeCountry, nil, "Country name to exclude (repeatable)")
	flags.Int(FlagMinRuntime, 0, "Minimum runtime in minutes")
	flags.Int(FlagMaxRuntime, 0, "Maximum runtime in minutes")
	flags.String(FlagSortType, "", "Sort key (moviemeter, user_rating, num_votes)")
	flags.String(FlagSortOption, "", "Sort direction (asc, desc)")
	flags.StringSlice(FlagTitleType, nil, "Title type (repeatable)")
	flags.StringArray(FlagExcludeKeyword, nil, "Keyword to exclude (repeatable)")
}

// LoadFromFlags creates a Config from the global and build command flags
func LoadFromFlags(flags *pflag.FlagSet) (*Config, error) {
	config, err := LoadGlobalFromFlags(flags)
	if err != nil {
		return nil, err
	}

	if config.QueryPath, err = flags.GetString(FlagConfig); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get config flag")
	}
	config.QueryPathSet = flags.Changed(FlagConfig)
	if !config.QueryPathSet {
		if path := os.Getenv(EnvConfig); path != "" {
			config.QueryPath = path
			config.QueryPathSet = true
		}
	}

	noAwards, err := flags.GetBool(FlagNoAwards)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get no-awards flag")
	}
	config.HasAwards = !noAwards

	if config.Explain, err = flags.GetBool(FlagExplain); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get explain flag")
	}

	if config.Watch, err = flags.GetBool(FlagWatch); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get watch flag")
	}

	if config.Overrides, err = loadOverrides(flags); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadGlobalFromFlags creates a Config from the flags shared by every command
func LoadGlobalFromFlags(flags *pflag.FlagSet) (*Config, error) {
	config := NewConfig()

	var err error

	if config.EnvFile, err = flags.GetString(FlagEnvFile); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get env-file flag")
	}
	if err := LoadEnvFile(config.EnvFile, flags.Changed(FlagEnvFile)); err != nil {
		return nil, err
	}

	if config.BaseURL, err = flags.GetString(FlagBaseURL); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get base-url flag")
	}
	if config.BaseURL == "" {
		config.BaseURL = os.Getenv(EnvBaseURL)
	}

	if config.StrictEncoding, err = flags.GetBool(FlagStrictEncoding); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get strict-encoding flag")
	}

	if config.Verbose, err = flags.GetBool(FlagVerbose); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get verbose flag")
	}

	if config.Debug, err = flags.GetBool(FlagDebug); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get debug flag")
	}

	// Configure log level from verbosity, env var as fallback
	switch {
	case config.Debug:
		config.Logger.Level = "debug"
		config.Logger.WithCaller = true
	case config.Verbose:
		config.Logger.Level = "info"
	default:
		if level := os.Getenv(EnvLogLevel); level != "" {
			config.Logger.Level = strings.ToLower(level)
		}
	}

	if config.Logger.Format, err = flags.GetString(FlagLogFormat); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get log-format flag")
	}
	if !flags.Changed(FlagLogFormat) {
		if format := os.Getenv(EnvLogFormat); format != "" {
			config.Logger.Format = strings.ToLower(format)
		}
	}

	return config, nil
}

// FromEnv creates a Config from IMDBURL_* variables alone, for entry points
// without flags
func FromEnv() *Config {
	config := NewConfig()
	config.BaseURL = os.Getenv(EnvBaseURL)
	if level := os.Getenv(EnvLogLevel); level != "" {
		config.Logger.Level = strings.ToLower(level)
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		config.Logger.Format = strings.ToLower(format)
	}
	return config
}

// LoadEnvFile loads variables from an env file without overriding the
// environment. A missing file only fails when it was asked for explicitly.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !required && stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to load env file").
			WithContext("path", path)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if !stderrors.As(err, &validationErrs) || len(validationErrs) == 0 {
			return errors.Wrap(err, errors.ErrorTypeConfig, "invalid configuration")
		}
		fe := validationErrs[0]
		return errors.Newf(errors.ErrorTypeConfig, "invalid value %v for %s", fe.Value(), fe.Namespace()).
			WithContext("field", fe.Namespace()).
			WithContext("rule", fe.Tag())
	}

	if c.Watch && c.QueryPath == StdinPath {
		return errors.New(errors.ErrorTypeConfig, "cannot watch standard input").
			WithContext("suggestion", "pass a query file with --config")
	}

	return nil
}
