package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"kbbridge/core/log"
)

type DiscordConfig struct {
	BotToken              string
	GuildID               string
	ActiveCategoryName    string
	CompletedCategoryName string
	// ThreadRepliesEnabled forwards every message posted in a thread, mention or not
	ThreadRepliesEnabled bool
}

type ForwardingConfig struct {
	WebhookURL   string
	Timeout      time.Duration
	HistoryLimit int
	EventWorkers int
}

type SlackAlertConfig struct {
	WebhookURL string
}

func (c SlackAlertConfig) IsConfigured() bool {
	return c.WebhookURL != ""
}

type AppConfig struct {
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	ServerLogsURL      string

	DiscordConfig    DiscordConfig
	ForwardingConfig ForwardingConfig
	SlackAlertConfig SlackAlertConfig
}

// CORSOrigins splits CORS_ALLOWED_ORIGINS on commas
func (c *AppConfig) CORSOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// LoadConfig reads the environment, first loading envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Warn("⚠️ Could not load env file, continuing with system env vars", "file", envFile)
		}
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	guildID, err := getEnvRequired("DISCORD_GUILD_ID")
	if err != nil {
		return nil, err
	}

	webhookURL, err := getEnvRequired("N8N_WEBHOOK_URL")
	if err != nil {
		return nil, err
	}
	if err := validateWebhookURL(webhookURL); err != nil {
		return nil, fmt.Errorf("N8N_WEBHOOK_URL: %w", err)
	}

	forwardTimeout, err := getEnvDuration("FORWARD_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	historyLimit, err := getEnvInt("HISTORY_LIMIT", 20)
	if err != nil {
		return nil, err
	}
	if historyLimit < 1 || historyLimit > 100 {
		return nil, fmt.Errorf("HISTORY_LIMIT must be between 1 and 100, got %d", historyLimit)
	}

	eventWorkers, err := getEnvInt("EVENT_WORKERS", 8)
	if err != nil {
		return nil, err
	}
	if eventWorkers < 1 {
		return nil, fmt.Errorf("EVENT_WORKERS must be positive, got %d", eventWorkers)
	}

	threadReplies, err := getEnvBool("THREAD_REPLIES_ENABLED", false)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		ServerLogsURL:      getEnvWithDefault("SERVER_LOGS_URL", ""),

		DiscordConfig: DiscordConfig{
			BotToken:              botToken,
			GuildID:               guildID,
			ActiveCategoryName:    getEnvWithDefault("ACTIVE_CATEGORY_NAME", "Active Projects"),
			CompletedCategoryName: getEnvWithDefault("COMPLETED_CATEGORY_NAME", "Completed Projects"),
			ThreadRepliesEnabled:  threadReplies,
		},

		ForwardingConfig: ForwardingConfig{
			WebhookURL:   webhookURL,
			Timeout:      forwardTimeout,
			HistoryLimit: historyLimit,
			EventWorkers: eventWorkers,
		},

		SlackAlertConfig: SlackAlertConfig{
			WebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},
	}

	if config.DiscordConfig.ActiveCategoryName == config.DiscordConfig.CompletedCategoryName {
		return nil, fmt.Errorf("ACTIVE_CATEGORY_NAME and COMPLETED_CATEGORY_NAME must differ")
	}

	if config.SlackAlertConfig.IsConfigured() {
		log.Info("✅ Slack error alerts configured")
	} else {
		log.Warn("⚠️ Slack error alerts not configured - alerts will only be logged")
	}

	return config, nil
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, value)
	}
	return d, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, value)
	}
	return b, nil
}
