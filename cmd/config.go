package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/transfer"
	"dispatch/internal/core/domain/services"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// KafkaBrokers is a comma separated list. Empty means notifications and
	// settlement events are written to the log instead of Kafka.
	KafkaBrokers           string
	KafkaNotificationTopic string
	KafkaSettlementTopic   string

	ReaperSchedule  string
	OutboxSchedule  string
	OutboxBatchSize int

	UnacceptedTTL    time.Duration
	DeliveryDeadline time.Duration
	BacklogThreshold time.Duration
	TransferTTL      time.Duration

	LogLevel slog.Level
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Brokers splits KafkaBrokers, dropping blanks.
func (c Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// LoadConfig reads the environment, seeded from the given .env files when
// they exist. A missing file is not an error.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:               get("HTTP_PORT", "8080"),
		DBHost:                 get("DB_HOST", "localhost"),
		DBPort:                 get("DB_PORT", "5432"),
		DBUser:                 get("DB_USER", "postgres"),
		DBPassword:             get("DB_PASSWORD", "password"),
		DBName:                 get("DB_NAME", "dispatch"),
		DBSslMode:              get("DB_SSLMODE", "disable"),
		KafkaBrokers:           get("KAFKA_BROKERS", ""),
		KafkaNotificationTopic: get("KAFKA_NOTIFICATION_TOPIC", "dispatch.notifications"),
		KafkaSettlementTopic:   get("KAFKA_SETTLEMENT_TOPIC", "dispatch.settlements"),
		ReaperSchedule:         get("REAPER_SCHEDULE", "0 * * * * *"),
		OutboxSchedule:         get("OUTBOX_SCHEDULE", "*/5 * * * * *"),
	}

	var errList []error

	batch, err := strconv.Atoi(get("OUTBOX_BATCH_SIZE", "100"))
	if err != nil || batch <= 0 {
		errList = append(errList, fmt.Errorf("OUTBOX_BATCH_SIZE must be a positive integer"))
	}
	cfg.OutboxBatchSize = batch

	durations := []struct {
		key      string
		fallback time.Duration
		dst      *time.Duration
	}{
		{"UNACCEPTED_TTL", services.DefaultUnacceptedTTL, &cfg.UnacceptedTTL},
		{"DELIVERY_DEADLINE", services.DefaultDeliveryDeadline, &cfg.DeliveryDeadline},
		{"BACKLOG_THRESHOLD", services.DefaultBacklogThreshold, &cfg.BacklogThreshold},
		{"TRANSFER_TTL", transfer.DefaultTTL, &cfg.TransferTTL},
	}
	for _, d := range durations {
		v, parseErr := time.ParseDuration(get(d.key, d.fallback.String()))
		if parseErr != nil {
			errList = append(errList, fmt.Errorf("%s: %w", d.key, parseErr))
			continue
		}
		*d.dst = v
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "INFO"))); err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
