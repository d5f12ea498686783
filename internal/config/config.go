package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv      string   `envconfig:"APP_ENV" default:"development"`
	ServerPort  string   `envconfig:"SERVER_PORT" default:"8080"`
	DBDriver    string   `envconfig:"DB_DRIVER" default:"mysql"`
	SQLitePath  string   `envconfig:"SQLITE_PATH" default:"tailorshop.db"`
	MySQLDSN    string   `envconfig:"MYSQL_DSN" default:"user:password@tcp(localhost:3306)/tailorshop?charset=utf8mb4&parseTime=True&loc=Local"`
	PostgresDSN string   `envconfig:"POSTGRES_DSN" default:"host=localhost user=postgres password=postgres dbname=tailorshop port=5432 sslmode=disable"`
	ResetDB     bool     `envconfig:"RESET_DB" default:"false"`
	RedisAddr   string   `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB     int      `envconfig:"REDIS_DB" default:"0"`
	RedisPass   string   `envconfig:"REDIS_PASSWORD"`
	JWTSecret   string   `envconfig:"JWT_SECRET" default:"change-me"`
	SwaggerHost string   `envconfig:"SWAGGER_HOST"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	// AdminEmail is registered with the admin role instead of customer.
	AdminEmail   string `envconfig:"ADMIN_EMAIL" default:"admin@majeed.com"`
	ShopWhatsApp string `envconfig:"SHOP_WHATSAPP" default:"919876543210"`
	ShopName     string `envconfig:"SHOP_NAME" default:"Majeed Elite Tailor"`
	PublicURL    string `envconfig:"PUBLIC_URL" default:"http://localhost:8080"`

	Storage StorageConfig
	Gemini  GeminiConfig
	Twilio  TwilioConfig
	SES     SESConfig
	AMQP    AMQPConfig

	ReminderCron string `envconfig:"REMINDER_CRON" default:"0 9 * * *"`
}

// StorageConfig selects and configures the object storage disk.
type StorageConfig struct {
	Disk       string `envconfig:"STORAGE_DISK" default:"local"`
	LocalRoot  string `envconfig:"STORAGE_LOCAL_ROOT" default:"storage"`
	URL        string `envconfig:"STORAGE_URL" default:"http://localhost:8080/storage"`
	S3Bucket   string `envconfig:"S3_BUCKET"`
	S3Region   string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Key      string `envconfig:"S3_KEY"`
	S3Secret   string `envconfig:"S3_SECRET"`
	S3Endpoint string `envconfig:"S3_ENDPOINT"`
	S3URL      string `envconfig:"S3_URL"`
}

// GeminiConfig configures the style advice text generator.
type GeminiConfig struct {
	APIKey      string  `envconfig:"GEMINI_API_KEY"`
	Model       string  `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	Temperature float32 `envconfig:"GEMINI_TEMPERATURE" default:"0.7"`
}

// TwilioConfig configures outbound SMS and WhatsApp messages.
type TwilioConfig struct {
	AccountSID     string `envconfig:"TWILIO_ACCOUNT_SID"`
	AuthToken      string `envconfig:"TWILIO_AUTH_TOKEN"`
	PhoneNumber    string `envconfig:"TWILIO_PHONE_NUMBER"`
	WhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER"`
}

// Enabled reports whether Twilio credentials are present.
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

// SESConfig configures verification email delivery.
type SESConfig struct {
	Region      string `envconfig:"SES_REGION" default:"us-east-1"`
	AccessKey   string `envconfig:"SES_ACCESS_KEY_ID"`
	SecretKey   string `envconfig:"SES_SECRET_ACCESS_KEY"`
	SenderEmail string `envconfig:"SES_SENDER_EMAIL"`
}

// Enabled reports whether a sender address is configured.
func (s SESConfig) Enabled() bool {
	return s.SenderEmail != ""
}

// AMQPConfig configures the booking event exchange.
type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"tailorshop.events"`
	Queue    string `envconfig:"AMQP_QUEUE" default:"tailorshop.notifications"`
}

// IsProduction reports whether the app runs in a production environment.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// Load builds Config from a .env file (if any) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
