package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ProviderYandex = "yandex"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	BotToken            string        `envconfig:"BOT_TOKEN"             required:"true"`
	CompletionAPIKey    string        `envconfig:"COMPLETION_API_KEY"    required:"true"`
	CompletionFolderID  string        `envconfig:"COMPLETION_FOLDER_ID"`
	CompletionProvider  string        `envconfig:"COMPLETION_PROVIDER"   default:"yandex"`
	CompletionModel     string        `envconfig:"COMPLETION_MODEL"`
	CompletionEndpoint  string        `envconfig:"COMPLETION_ENDPOINT"`
	CompletionTimeout   time.Duration `envconfig:"COMPLETION_TIMEOUT"    default:"90s"`
	ChannelID           string        `envconfig:"CHANNEL_ID"`
	Timezone            string        `envconfig:"TIMEZONE"              default:"Europe/Moscow"`
	AutopostTimes       []string      `envconfig:"AUTOPOST_TIMES"        default:"10:00,18:00"`
	IdeasFilePath       string        `envconfig:"IDEAS_FILE_PATH"`
	IdeasImportSelector string        `envconfig:"IDEAS_IMPORT_SELECTOR" default:"h2 a, h3 a"`
	DefaultLanguage     string        `envconfig:"DEFAULT_LANGUAGE"      default:"ru"`
	LogLevel            string        `envconfig:"LOG_LEVEL"             default:"info"`
}

// ClockTime is a wall-clock trigger time, independent of any timezone.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// LoadConfigFromEnv reads an optional .env file and then the process environment.
// The returned bool reports whether a .env file was found.
func LoadConfigFromEnv() (Config, bool, error) {
	dotenvFound := godotenv.Load() == nil

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, dotenvFound, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, dotenvFound, err
	}
	return cfg, dotenvFound, nil
}

func (c *Config) Validate() error {
	switch c.CompletionProvider {
	case ProviderYandex:
		if c.CompletionFolderID == "" {
			return fmt.Errorf("COMPLETION_FOLDER_ID is required for provider %q", c.CompletionProvider)
		}
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown COMPLETION_PROVIDER %q", c.CompletionProvider)
	}
	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("COMPLETION_TIMEOUT must be positive, got %s", c.CompletionTimeout)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.ScheduleTimes(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ScheduleTimes parses AUTOPOST_TIMES ("HH:MM" entries) in the order given.
func (c *Config) ScheduleTimes() ([]ClockTime, error) {
	times := make([]ClockTime, 0, len(c.AutopostTimes))
	for _, raw := range c.AutopostTimes {
		t, err := ParseClockTime(raw)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

func ParseClockTime(raw string) (ClockTime, error) {
	hourStr, minuteStr, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return ClockTime{}, fmt.Errorf("invalid autopost time %q: expected HH:MM", raw)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid autopost time %q: bad hour", raw)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid autopost time %q: bad minute", raw)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ChannelConfigured reports whether a destination channel was set.
func (c *Config) ChannelConfigured() bool {
	return strings.TrimSpace(c.ChannelID) != ""
}
