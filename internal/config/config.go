package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Storage     Storage     `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	OpenRouter  OpenRouter  `mapstructure:",squash"`
	Assistant   Assistant   `mapstructure:",squash"`
	QuotaReset  QuotaReset  `mapstructure:",squash"`
	DailyExport DailyExport `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Storage struct {
	DataDir   string `mapstructure:"data_dir"`
	ExportDir string `mapstructure:"export_dir"`
}

type Auth struct {
	Secret        string `mapstructure:"auth_secret"`
	DemoPassword  string `mapstructure:"demo_password"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

type OpenRouter struct {
	URL            string  `mapstructure:"openrouter_url"`
	APIKey         string  `mapstructure:"openrouter_api_key"`
	Model          string  `mapstructure:"openrouter_model"`
	SiteURL        string  `mapstructure:"openrouter_site_url"`
	SiteName       string  `mapstructure:"openrouter_site_name"`
	TimeoutSeconds int     `mapstructure:"openrouter_timeout_seconds"`
	Temperature    float64 `mapstructure:"openrouter_temperature"`
}

type Assistant struct {
	DailyMessageLimit   int `mapstructure:"assistant_daily_message_limit"`
	ChatCooldownSeconds int `mapstructure:"assistant_chat_cooldown_seconds"`
	InsightWindow       int `mapstructure:"assistant_insight_window"`
	WhatIfWindow        int `mapstructure:"assistant_what_if_window"`
	TaskWindow          int `mapstructure:"assistant_task_window"`
}

type QuotaReset struct {
	CronSchedule string `mapstructure:"quota_reset_cron"`
	Enabled      bool   `mapstructure:"quota_reset_enabled"`
}

type DailyExport struct {
	CronSchedule string `mapstructure:"daily_export_cron"`
	Enabled      bool   `mapstructure:"daily_export_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("EXPORT_DIR", "./exports")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("DEMO_PASSWORD", "TherraBizDemo") // ONLY LOCAL
	viper.SetDefault("TOKEN_TTL_HOURS", 24)

	viper.SetDefault("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions")
	viper.SetDefault("OPENROUTER_API_KEY", "")
	viper.SetDefault("OPENROUTER_MODEL", "cognitivecomputations/dolphin-mistral-24b-venice-edition:free")
	viper.SetDefault("OPENROUTER_SITE_URL", "http://localhost:3000")
	viper.SetDefault("OPENROUTER_SITE_NAME", "TherraBiz Dashboard")
	viper.SetDefault("OPENROUTER_TIMEOUT_SECONDS", 30)
	viper.SetDefault("OPENROUTER_TEMPERATURE", 0.7)

	viper.SetDefault("ASSISTANT_DAILY_MESSAGE_LIMIT", 50)
	viper.SetDefault("ASSISTANT_CHAT_COOLDOWN_SECONDS", 3)
	// Tail windows of records sent to the model. Data minimization, not a
	// performance tweak: only the last N records ever leave the device.
	viper.SetDefault("ASSISTANT_INSIGHT_WINDOW", 20)
	viper.SetDefault("ASSISTANT_WHAT_IF_WINDOW", 10)
	viper.SetDefault("ASSISTANT_TASK_WINDOW", 7)

	viper.SetDefault("QUOTA_RESET_CRON", "0 0 * * *") // Midnight every day
	viper.SetDefault("QUOTA_RESET_ENABLED", true)

	viper.SetDefault("DAILY_EXPORT_CRON", "5 0 * * *") // Shortly after midnight
	viper.SetDefault("DAILY_EXPORT_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Load .env first with godotenv so plain `go run` picks it up locally.
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using variables loaded by godotenv (viper could not read .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile tries the usual locations for a .env file.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from:", location)
			return
		}
	}
}
