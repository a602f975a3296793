package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
)

// Config holds all configuration for the service, read from the environment.
type Config struct {
	HTTPPort  int    `mapstructure:"HTTP_PORT"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	StorageDriver      string `mapstructure:"STORAGE_DRIVER"`
	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBEndpoint   string `mapstructure:"DYNAMODB_ENDPOINT"`
	RequestsTable      string `mapstructure:"REQUESTS_TABLE"`
	PaymentOrdersTable string `mapstructure:"PAYMENT_ORDERS_TABLE"`
	ProjectsTable      string `mapstructure:"PROJECTS_TABLE"`
	UsersTable         string `mapstructure:"USERS_TABLE"`

	MercadoPagoAccessToken string        `mapstructure:"MERCADOPAGO_ACCESS_TOKEN"`
	PaymentGatewayMock     bool          `mapstructure:"PAYMENT_GATEWAY_MOCK"`
	PaymentKeySecret       string        `mapstructure:"PAYMENT_KEY_SECRET"`
	PaymentWebhookSecret   string        `mapstructure:"PAYMENT_WEBHOOK_SECRET"`
	PaymentCurrency        string        `mapstructure:"PAYMENT_CURRENCY"`
	PaymentNotificationURL string        `mapstructure:"PAYMENT_NOTIFICATION_URL"`
	PaymentAttemptTTL      time.Duration `mapstructure:"PAYMENT_ATTEMPT_TTL"`
	PaymentExpirySchedule  string        `mapstructure:"PAYMENT_EXPIRY_SCHEDULE"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	LockTTL       time.Duration `mapstructure:"LOCK_TTL"`
	LockWait      time.Duration `mapstructure:"LOCK_WAIT"`

	RabbitMQURL           string `mapstructure:"RABBITMQ_URL"`
	NotificationsExchange string `mapstructure:"NOTIFICATIONS_EXCHANGE"`
	MailFrom              string `mapstructure:"MAIL_FROM"`

	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string   `mapstructure:"KAFKA_TOPIC"`

	StrictTransitions bool   `mapstructure:"STRICT_TRANSITIONS"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	LogDevelopment    bool   `mapstructure:"LOG_DEVELOPMENT"`
}

var defaults = map[string]any{
	"HTTP_PORT":                8080,
	"JWT_SECRET":               "",
	"STORAGE_DRIVER":           StorageMemory,
	"AWS_REGION":               "us-east-1",
	"AWS_ACCESS_KEY_ID":        "",
	"AWS_SECRET_ACCESS_KEY":    "",
	"DYNAMODB_ENDPOINT":        "",
	"REQUESTS_TABLE":           "requests",
	"PAYMENT_ORDERS_TABLE":     "payment_orders",
	"PROJECTS_TABLE":           "projects",
	"USERS_TABLE":              "users",
	"MERCADOPAGO_ACCESS_TOKEN": "",
	"PAYMENT_GATEWAY_MOCK":     false,
	"PAYMENT_KEY_SECRET":       "",
	"PAYMENT_WEBHOOK_SECRET":   "",
	"PAYMENT_CURRENCY":         "INR",
	"PAYMENT_NOTIFICATION_URL": "",
	"PAYMENT_ATTEMPT_TTL":      "30m",
	"PAYMENT_EXPIRY_SCHEDULE":  "@every 5m",
	"REDIS_ADDR":               "",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"LOCK_TTL":                 "10s",
	"LOCK_WAIT":                "5s",
	"RABBITMQ_URL":             "",
	"NOTIFICATIONS_EXCHANGE":   "notifications",
	"MAIL_FROM":                "",
	"KAFKA_BROKERS":            "",
	"KAFKA_TOPIC":              "request-events",
	"STRICT_TRANSITIONS":       true,
	"LOG_LEVEL":                "info",
	"LOG_DEVELOPMENT":          false,
}

// Load reads configuration from environment variables. Every key has a
// default so AutomaticEnv picks it up on Unmarshal.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.KafkaBrokers = splitList(cfg.KafkaBrokers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case StorageMemory, StorageDynamoDB:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMemory, StorageDynamoDB, c.StorageDriver))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort))
	}
	if c.PaymentAttemptTTL <= 0 {
		errs = append(errs, errors.New("PAYMENT_ATTEMPT_TTL must be positive"))
	}
	if strings.TrimSpace(c.PaymentCurrency) == "" {
		errs = append(errs, errors.New("PAYMENT_CURRENCY is required"))
	}
	return errors.Join(errs...)
}

// splitList flattens comma separated entries and drops blanks.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
