package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Release tagging
	Gerrit      GerritConfig
	Phabricator PhabricatorConfig
	Tagger      TaggerConfig

	// Webhooks
	Webhook WebhookConfig

	// Failure reports
	Telegram TelegramConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// GerritConfig describes the source-control host.
type GerritConfig struct {
	URL             string
	PrimaryProject  string   // e.g. "mediawiki/core"
	WatchedProjects []string // explicit project names
	WatchedPrefixes []string // every project under these prefixes is watched
	Sender          string   // notification mails must come from this address
}

// PhabricatorConfig describes the issue tracker.
type PhabricatorConfig struct {
	URL               string
	APIToken          string
	RequestsPerSecond float64
}

// TaggerConfig drives one batch pass.
type TaggerConfig struct {
	SpoolDir             string
	LockFile             string
	SuggestReleaseBranch bool // also tag master merges of the primary project with the next REL branch
	DryRun               bool
}

type WebhookConfig struct {
	Enabled         bool
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/release-tagger/
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from path, or searches like Load when path is empty.
func LoadFrom(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/release-tagger/")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Gerrit
	cfg.Gerrit.URL = strings.TrimRight(viper.GetString("gerrit.url"), "/")
	cfg.Gerrit.PrimaryProject = viper.GetString("gerrit.primary_project")
	cfg.Gerrit.WatchedProjects = splitList(viper.GetStringSlice("gerrit.watched_projects"))
	cfg.Gerrit.WatchedPrefixes = splitList(viper.GetStringSlice("gerrit.watched_prefixes"))
	cfg.Gerrit.Sender = viper.GetString("gerrit.sender")

	// Phabricator
	cfg.Phabricator.URL = strings.TrimRight(viper.GetString("phabricator.url"), "/")
	cfg.Phabricator.APIToken = viper.GetString("phabricator.api_token")
	if token := viper.GetString("phabricator_api_token"); token != "" {
		cfg.Phabricator.APIToken = token
	}
	cfg.Phabricator.RequestsPerSecond = viper.GetFloat64("phabricator.requests_per_second")

	// Tagger
	cfg.Tagger.SpoolDir = viper.GetString("tagger.spool_dir")
	cfg.Tagger.LockFile = viper.GetString("tagger.lock_file")
	cfg.Tagger.SuggestReleaseBranch = viper.GetBool("tagger.suggest_release_branch")
	cfg.Tagger.DryRun = viper.GetBool("tagger.dry_run")

	// Webhooks
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.AllowedIPs = splitList(viper.GetStringSlice("webhook.allowed_ips"))

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	cfg.Telegram.ChatID = viper.GetInt64("telegram.chat_id")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("gerrit.url", "https://gerrit.wikimedia.org/r")
	viper.SetDefault("gerrit.primary_project", "mediawiki/core")
	viper.SetDefault("gerrit.watched_prefixes", []string{"mediawiki/"})
	viper.SetDefault("gerrit.sender", "gerrit@wikimedia.org")

	viper.SetDefault("phabricator.url", "https://phabricator.wikimedia.org")
	viper.SetDefault("phabricator.requests_per_second", 5)

	viper.SetDefault("tagger.spool_dir", "./spool")
	viper.SetDefault("tagger.lock_file", "./spool/.tagger.lock")
	viper.SetDefault("tagger.suggest_release_branch", false)
	viper.SetDefault("tagger.dry_run", false)

	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("webhook.enabled", true)
}

func validate(cfg *Config) error {
	if cfg.Gerrit.URL == "" {
		return fmt.Errorf("gerrit.url is required")
	}
	if cfg.Gerrit.PrimaryProject == "" {
		return fmt.Errorf("gerrit.primary_project is required")
	}
	if cfg.Phabricator.URL == "" {
		return fmt.Errorf("phabricator.url is required")
	}
	if cfg.Tagger.SpoolDir == "" {
		return fmt.Errorf("tagger.spool_dir is required")
	}
	return nil
}

// splitList flattens comma separated entries, since lists coming from env
// vars arrive as a single string.
func splitList(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, item := range strings.Split(entry, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
