// Package config loads service configuration with viper: defaults, an
// optional JSON file named after ENVIRONMENT and environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	TransportKafka = "kafka"
	TransportSNS   = "sns"
)

type Config struct {
	ServiceName string    `mapstructure:"service_name"`
	Env         string    `mapstructure:"env"`
	Port        string    `mapstructure:"port"`
	Transport   string    `mapstructure:"transport"`
	Database    Database  `mapstructure:"database"`
	AWS         AWS       `mapstructure:"aws"`
	Kafka       Kafka     `mapstructure:"kafka"`
	Telemetry   Telemetry `mapstructure:"telemetry"`
	Saga        Saga      `mapstructure:"saga"`

	databaseURL string
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// AWS holds the SNS/SQS transport settings. Topic ARNs and queue URLs are
// derived per saga topic from the prefixes.
type AWS struct {
	AccessKeyID       string `mapstructure:"access_key_id"`
	SecretAccessKey   string `mapstructure:"secret_access_key"`
	Region            string `mapstructure:"region"`
	EndpointSNS       string `mapstructure:"endpoint_sns"`
	EndpointSQS       string `mapstructure:"endpoint_sqs"`
	SNSTopicArnPrefix string `mapstructure:"sns_topic_arn_prefix"`
	SQSQueueURLPrefix string `mapstructure:"sqs_queue_url_prefix"`
	FIFO              bool   `mapstructure:"fifo"`
}

type Kafka struct {
	Brokers  []string `mapstructure:"brokers"`
	GroupID  string   `mapstructure:"group_id"`
	ClientID string   `mapstructure:"client_id"`
}

type Telemetry struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type Saga struct {
	MinAmount      float64       `mapstructure:"min_amount"`
	ReaperInterval time.Duration `mapstructure:"reaper_interval"`
	ReaperMaxAge   time.Duration `mapstructure:"reaper_max_age"`
}

// Options describe the service being configured
type Options struct {
	ServiceName string
	// EnvPrefix scopes overrides, e.g. PAYMENT_PORT
	EnvPrefix string
	Port      string
	// ConfigDir is searched for <ENVIRONMENT>.json; a missing file is fine
	ConfigDir string
	// Defaults are service specific defaults applied over the shared ones
	Defaults map[string]interface{}
}

// Load reads the configuration of one service
func Load(opts Options) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName())
	v.SetConfigType("json")
	if opts.ConfigDir != "" {
		v.AddConfigPath(opts.ConfigDir)
	}

	v.SetEnvPrefix(opts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, opts)

	if opts.ConfigDir != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "error reading config file")
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}
	config.databaseURL = os.Getenv("DATABASE_URL")

	switch config.Transport {
	case TransportKafka, TransportSNS:
	default:
		return nil, errors.Errorf("unknown transport %q", config.Transport)
	}

	return &config, nil
}

func configName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

func setDefaults(v *viper.Viper, opts Options) {
	// Service defaults
	v.SetDefault("service_name", opts.ServiceName)
	v.SetDefault("env", getEnv("ENV", "local"))
	v.SetDefault("port", getEnv("PORT", opts.Port))
	v.SetDefault("transport", getEnv("SAGA_TRANSPORT", TransportKafka))

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.database", strings.TrimSuffix(opts.ServiceName, "-service")+"-db")
	v.SetDefault("database.ssl_mode", "disable")

	// AWS defaults
	v.SetDefault("aws.access_key_id", getEnv("AWS_ACCESS_KEY_ID", "test"))
	v.SetDefault("aws.secret_access_key", getEnv("AWS_SECRET_ACCESS_KEY", "test"))
	v.SetDefault("aws.region", getEnv("AWS_DEFAULT_REGION", "us-east-1"))
	v.SetDefault("aws.endpoint_sns", getEnv("AWS_ENDPOINT_URL_SNS", "http://localhost:4566"))
	v.SetDefault("aws.endpoint_sqs", getEnv("AWS_ENDPOINT_URL_SQS", "http://localhost:4566"))
	v.SetDefault("aws.sns_topic_arn_prefix", getEnv("SNS_TOPIC_ARN_PREFIX", "arn:aws:sns:us-east-1:000000000000:"))
	v.SetDefault("aws.sqs_queue_url_prefix", getEnv("SQS_QUEUE_URL_PREFIX", "http://localhost:4566/000000000000/"))
	v.SetDefault("aws.fifo", true)

	// Kafka defaults
	v.SetDefault("kafka.brokers", []string{getEnv("KAFKA_BROKERS", "localhost:9092")})
	v.SetDefault("kafka.group_id", opts.ServiceName+"-group")
	v.SetDefault("kafka.client_id", opts.ServiceName)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"))
	v.SetDefault("telemetry.sample_ratio", 1.0)

	// Saga defaults
	v.SetDefault("saga.min_amount", 0.1)
	v.SetDefault("saga.reaper_interval", time.Minute)
	v.SetDefault("saga.reaper_max_age", 10*time.Minute)

	for key, value := range opts.Defaults {
		v.SetDefault(key, value)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDatabaseURL returns DATABASE_URL when set, otherwise builds the URL
// from the database section
func (c *Config) GetDatabaseURL() string {
	if c.databaseURL != "" {
		return c.databaseURL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
