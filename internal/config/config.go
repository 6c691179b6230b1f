package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every hackatime-alarm command.
type Config struct {
	// APIURL is the base URL of the Hackatime API.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`
	// APIKey overrides the credential stored next to the alarms when set.
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	// Timeout bounds network operations and RPC calls.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// PollInterval is the foreground monitor period.
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	// BackgroundInterval is the background task period.
	BackgroundInterval time.Duration `mapstructure:"background_interval" yaml:"background_interval"`
	// Timezone defines the day boundary used for trigger rollover.
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// LogFormat is either "console" or "json".
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	// ServerAddress is the gRPC control API address of the foreground daemon.
	ServerAddress string `mapstructure:"server_addr" yaml:"server_addr"`
	// HTTPAddress is the status and metrics address. Empty disables it.
	HTTPAddress string `mapstructure:"http_addr" yaml:"http_addr"`
	// PIDFile marks a running foreground daemon.
	PIDFile string `mapstructure:"pid_file" yaml:"pid_file"`
	// Storage selects where alarms and the credential are persisted.
	Storage Storage `mapstructure:"storage" yaml:"storage"`
	// Notifications selects the notification channels.
	Notifications Notifications `mapstructure:"notifications" yaml:"notifications"`
}

// Storage configures the alarm repository.
type Storage struct {
	// Driver is either "file" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`
	// Path is the state file or database location.
	Path string `mapstructure:"path" yaml:"path"`
}

// Notifications configures notification delivery.
type Notifications struct {
	// Desktop enables freedesktop notifications over D-Bus.
	Desktop bool `mapstructure:"desktop" yaml:"desktop"`
	// Sound enables the audible cue of the foreground monitor.
	Sound bool `mapstructure:"sound" yaml:"sound"`
	// SoundFile is an optional WAV file played instead of the built-in beep.
	SoundFile string `mapstructure:"sound_file" yaml:"sound_file,omitempty"`
	// SoundDuration caps how long the cue loops.
	SoundDuration time.Duration `mapstructure:"sound_duration" yaml:"sound_duration"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "hackatime-alarm.yaml"

	// DefaultAPIURL is the Hackatime API base URL.
	DefaultAPIURL = "https://hackatime.hackclub.com/api/hackatime/v1"

	// DefaultServerAddress is the default gRPC control API address.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultHTTPAddress is the default status and metrics address.
	DefaultHTTPAddress = "127.0.0.1:9464"

	// DefaultPIDFilename is the default PID file of the foreground daemon.
	DefaultPIDFilename = "hackatime-alarm.pid"

	// LogFormatConsole writes human readable logs.
	LogFormatConsole = "console"
	// LogFormatJSON writes one JSON object per log line.
	LogFormatJSON = "json"

	// DriverFile stores state as a JSON document.
	DriverFile = "file"
	// DriverSQLite stores state in a SQLite database.
	DriverSQLite = "sqlite"

	// DefaultStateFilename is the default state file for DriverFile.
	DefaultStateFilename = "hackatime-alarm-state.json"
	// DefaultDatabaseFilename is the default database for DriverSQLite.
	DefaultDatabaseFilename = "hackatime-alarm.db"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second
	// DefaultPollInterval is the default foreground monitor period.
	DefaultPollInterval = time.Minute
	// DefaultBackgroundInterval is the default background task period.
	DefaultBackgroundInterval = 15 * time.Minute
	// DefaultSoundDuration is the default length of the audible cue.
	DefaultSoundDuration = 30 * time.Second

	// DefaultFilePermissions is the default file permission for config and state files.
	DefaultFilePermissions = 0o600

	// envPrefix prefixes environment overrides, e.g. HACKATIME_ALARM_API_KEY.
	envPrefix = "HACKATIME_ALARM"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownDriver is returned for unsupported storage drivers.
	errUnknownDriver = errors.New("unknown storage driver")
	// errAPIURLRequired is returned when the API URL is empty.
	errAPIURLRequired = errors.New("api url must be provided")
	// errUnknownLogFormat is returned for unsupported log formats.
	errUnknownLogFormat = errors.New("unknown log format")
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{
		HTTPAddress: DefaultHTTPAddress,
		Notifications: Notifications{
			Desktop: true,
			Sound:   true,
		},
	}

	applyDefaults(cfg)

	return cfg
}

// Load reads configuration from the provided path, applies environment
// overrides and validates it. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	v := newViper()
	v.SetConfigFile(filepath.Clean(path))

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions, the file may hold the API key.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the provided settings.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	applyDefaults(settings)

	if strings.TrimSpace(settings.APIURL) == "" {
		return errAPIURLRequired
	}

	if _, err := url.ParseRequestURI(settings.APIURL); err != nil {
		return fmt.Errorf("invalid api url: %w", err)
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if settings.HTTPAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.HTTPAddress); err != nil {
			return fmt.Errorf("invalid http address: %w", err)
		}
	}

	switch settings.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", errUnknownLogFormat, settings.LogFormat)
	}

	if _, err := time.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	switch settings.Storage.Driver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", errUnknownDriver, settings.Storage.Driver)
	}

	return nil
}

// Location returns the time zone that defines the day boundary.
// Validate must have accepted the configuration first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}

	return loc
}

// newViper creates a viper instance with defaults and environment overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()

	// Every key needs a default, otherwise AutomaticEnv ignores it on Unmarshal.
	v.SetDefault("api_url", defaults.APIURL)
	v.SetDefault("api_key", "")
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("poll_interval", defaults.PollInterval)
	v.SetDefault("background_interval", defaults.BackgroundInterval)
	v.SetDefault("timezone", defaults.Timezone)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("server_addr", defaults.ServerAddress)
	v.SetDefault("http_addr", defaults.HTTPAddress)
	v.SetDefault("pid_file", defaults.PIDFile)
	v.SetDefault("storage.driver", defaults.Storage.Driver)
	v.SetDefault("storage.path", "")
	v.SetDefault("notifications.desktop", defaults.Notifications.Desktop)
	v.SetDefault("notifications.sound", defaults.Notifications.Sound)
	v.SetDefault("notifications.sound_file", "")
	v.SetDefault("notifications.sound_duration", defaults.Notifications.SoundDuration)

	return v
}

// applyDefaults fills every empty field with its default value.
func applyDefaults(cfg *Config) {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.BackgroundInterval <= 0 {
		cfg.BackgroundInterval = DefaultBackgroundInterval
	}

	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = LogFormatConsole
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultServerAddress
	}

	if cfg.PIDFile == "" {
		cfg.PIDFile = DefaultPIDFilename
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverFile
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStateFilename
		if cfg.Storage.Driver == DriverSQLite {
			cfg.Storage.Path = DefaultDatabaseFilename
		}
	}

	if cfg.Notifications.SoundDuration <= 0 {
		cfg.Notifications.SoundDuration = DefaultSoundDuration
	}
}
