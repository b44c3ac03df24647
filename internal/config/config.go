package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/oneshot/internal/constants"
	"github.com/oshokin/oneshot/internal/logger"
	"github.com/oshokin/oneshot/internal/utils"
	"github.com/oshokin/oneshot/internal/version"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// Timeout bounds a whole request (e.g., "30s", "2m"). "0" disables the limit.
	Timeout string `mapstructure:"timeout"`
	// UserAgent is sent when the request carries no User-Agent header.
	UserAgent string `mapstructure:"user_agent"`
	// MaxResponseSize caps the buffered response body (e.g., "10MB"). "0" disables the limit.
	MaxResponseSize string `mapstructure:"max_response_size"`
	// MaxLogLength caps request and response dumps written at debug level (e.g., "1MB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// FollowRedirects enables redirect following.
	FollowRedirects bool `mapstructure:"follow_redirects"`
	// MaxRedirects limits followed redirects, -1 means unlimited.
	MaxRedirects int64 `mapstructure:"max_redirects"`
	// CABundle is a PEM file trusted instead of the system certificate pool.
	CABundle string `mapstructure:"ca_bundle"`
	// ShowProgress enables the progress bar when the body is written to a file from a terminal.
	ShowProgress bool `mapstructure:"show_progress"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedTimeout is the parsed request timeout.
	ParsedTimeout time.Duration
	// ParsedMaxResponseSize is the parsed response size limit in bytes, 0 for no limit.
	ParsedMaxResponseSize int64
	// ParsedMaxLogLength is the parsed dump size limit in bytes.
	ParsedMaxLogLength uint64
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".oneshot.yaml"

	// EnvFilename is the dotenv file loaded before the configuration is read.
	EnvFilename = ".env"

	// EnvPrefix prefixes environment variables overriding configuration keys, e.g. ONESHOT_TIMEOUT.
	EnvPrefix = "ONESHOT"

	// DefaultMaxLogLength is the default maximum size (in bytes) of a logged request or response dump.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = "60s"

	// DefaultMaxResponseSize is the default response size limit.
	DefaultMaxResponseSize = "512MiB"

	// DefaultMaxRedirects matches the redirect limit of the engine.
	DefaultMaxRedirects = 30
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidTimeout indicates that the timeout is negative.
	ErrInvalidTimeout = errors.New("timeout must not be negative")
	// ErrInvalidMaxLogLength indicates that the dump size limit is zero.
	ErrInvalidMaxLogLength = errors.New("max_log_length must be positive")
	// ErrInvalidMaxRedirects indicates that the redirect limit is below -1.
	ErrInvalidMaxRedirects = errors.New("max_redirects must be -1 or greater")
	// ErrCABundleNotFound indicates that the configured CA bundle does not exist.
	ErrCABundleNotFound = errors.New("CA bundle not found")
	// ErrConfigExists indicates that SaveDefaultConfig would overwrite an existing file.
	ErrConfigExists = errors.New("configuration file already exists")
)

// setting is one configuration key with its default value.
type setting struct {
	// key is the YAML and viper key.
	key string
	// value is the default value.
	value any
	// comment is written above the key by SaveDefaultConfig.
	comment string
}

// defaultSettings returns the configuration keys in file order.
func defaultSettings() []setting {
	return []setting{
		{"log_level", "info", "Logging level: debug, info, warn, error."},
		{"timeout", DefaultTimeout, "Whole request timeout, \"0\" disables it."},
		{"user_agent", DefaultUserAgent(), "User-Agent sent when the request has none."},
		{"max_response_size", DefaultMaxResponseSize, "Largest response body kept in memory, \"0\" disables the limit."},
		{"max_log_length", "1MiB", "Largest request or response dump written at debug level."},
		{"follow_redirects", false, "Follow Location headers."},
		{"max_redirects", DefaultMaxRedirects, "Redirect limit when following, -1 means unlimited."},
		{"ca_bundle", "", "PEM file trusted instead of the system certificates."},
		{"show_progress", true, "Show a progress bar when writing the body to a file."},
	}
}

// DefaultUserAgent returns the User-Agent used when none is configured.
func DefaultUserAgent() string {
	return "oneshot/" + version.Short()
}

// LoadConfig loads configuration settings from a YAML file, the environment and a dotenv file.
// An empty filename reads DefaultConfigFilename when it exists and falls back to defaults otherwise.
// An explicitly named file must exist.
func LoadConfig(configFilename string) (*Config, error) {
	if err := godotenv.Load(EnvFilename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", EnvFilename, err)
	}

	v := viper.New()

	for _, s := range defaultSettings() {
		v.SetDefault(s.key, s.value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	isFileExist, err := utils.IsFileExist(configFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	if isFileExist || isExplicit {
		v.SetConfigFile(configFilename)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.ParsedTimeout = 0
	if timeout := strings.TrimSpace(cfg.Timeout); timeout != "" && timeout != "0" {
		cfg.ParsedTimeout, err = time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("failed to parse timeout: %w", err)
		}

		if cfg.ParsedTimeout < 0 {
			return ErrInvalidTimeout
		}
	}

	var parsedMaxResponseSize uint64
	if maxResponseSize := strings.TrimSpace(cfg.MaxResponseSize); maxResponseSize != "" && maxResponseSize != "0" {
		parsedMaxResponseSize, err = humanize.ParseBytes(maxResponseSize)
		if err != nil {
			return fmt.Errorf("failed to parse max response size: %w", err)
		}
	}

	// The accumulator compares sizes as int64.
	cfg.ParsedMaxResponseSize = utils.SafeUint64ToInt64(parsedMaxResponseSize)

	cfg.ParsedMaxLogLength = DefaultMaxLogLength
	if maxLogLength := strings.TrimSpace(cfg.MaxLogLength); maxLogLength != "" {
		cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}

		if cfg.ParsedMaxLogLength == 0 {
			return ErrInvalidMaxLogLength
		}
	}

	if cfg.MaxRedirects < -1 {
		return ErrInvalidMaxRedirects
	}

	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)
	cfg.CABundle = strings.TrimSpace(cfg.CABundle)

	if cfg.CABundle != "" {
		isFileExist, statErr := utils.IsFileExist(cfg.CABundle)
		if statErr != nil {
			return fmt.Errorf("failed to check CA bundle: %w", statErr)
		}

		if !isFileExist {
			return fmt.Errorf("%w: %s", ErrCABundleNotFound, cfg.CABundle)
		}
	}

	return nil
}

// SaveDefaultConfig writes a commented configuration file holding the default settings.
// An empty filename means DefaultConfigFilename. An existing file is only replaced when force is set.
func SaveDefaultConfig(configFilename string, force bool) (string, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	isFileExist, err := utils.IsFileExist(configFilename)
	if err != nil {
		return "", fmt.Errorf("failed to check config file: %w", err)
	}

	if isFileExist && !force {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, configFilename)
	}

	document, err := defaultConfigNode()
	if err != nil {
		return "", err
	}

	content, err := yaml.Marshal(document)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if dir := filepath.Dir(configFilename); dir != "." {
		if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return "", fmt.Errorf("failed to create config folder: %w", err)
		}
	}

	if err = os.WriteFile(configFilename, content, constants.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFilename, nil
}

// defaultConfigNode builds the YAML document of the default settings, keeping key order and comments.
func defaultConfigNode() (*yaml.Node, error) {
	mapNode := &yaml.Node{Kind: yaml.MappingNode}

	for _, s := range defaultSettings() {
		keyNode := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       s.key,
			HeadComment: s.comment,
		}

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(s.value); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", s.key, err)
		}

		// Keep string values quoted so that sizes and durations are never read as numbers.
		if valueNode.Tag == "!!str" {
			valueNode.Style = yaml.DoubleQuotedStyle
		}

		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{mapNode},
	}, nil
}
