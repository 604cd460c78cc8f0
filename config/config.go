package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting for the service. All values come from
// the environment (optionally seeded from a .env file).
type Config struct {
	Port string

	// Completion / embedding backend.
	OpenAIAPIKey string
	OpenAIModel  string

	// Vector store.
	ChromaURL      string
	CollectionName string

	// Optional directory of extra .md/.txt notes to index and watch.
	KnowledgeDir string

	// Mail submission for availability notifications.
	GmailEmail       string
	GmailAppPassword string
	NotifyEmail      string
	SMTPHost         string
	SMTPPort         int

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; the process environment always wins.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("CHROMA_URL", "http://localhost:8000")
	v.SetDefault("CHROMA_COLLECTION", "resume-chatbot")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	cfg := &Config{
		Port:             v.GetString("PORT"),
		OpenAIAPIKey:     v.GetString("OPENAI_API_KEY"),
		OpenAIModel:      v.GetString("OPENAI_MODEL"),
		ChromaURL:        v.GetString("CHROMA_URL"),
		CollectionName:   v.GetString("CHROMA_COLLECTION"),
		KnowledgeDir:     v.GetString("KNOWLEDGE_DIR"),
		GmailEmail:       v.GetString("GMAIL_EMAIL"),
		GmailAppPassword: v.GetString("GMAIL_APP_PASSWORD"),
		NotifyEmail:      v.GetString("NOTIFY_EMAIL"),
		SMTPHost:         v.GetString("SMTP_HOST"),
		SMTPPort:         v.GetInt("SMTP_PORT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
	}

	// Notifications go to the résumé owner's own mailbox unless overridden.
	if cfg.NotifyEmail == "" {
		cfg.NotifyEmail = cfg.GmailEmail
	}

	return cfg
}

// SMTPAddr returns the host:port of the mail submission endpoint.
func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}

// OpenAIConfigured reports whether a completion-service key is present.
func (c *Config) OpenAIConfigured() bool {
	return c.OpenAIAPIKey != ""
}

// MailConfigured reports whether the notifier has usable credentials.
func (c *Config) MailConfigured() bool {
	return c.GmailEmail != "" && c.GmailAppPassword != ""
}
