package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const priceOverridePrefix = "STRIPE_PRICE_ID_"

// applyEnv переопределяет секреты и основные параметры из переменных окружения
func (c *Config) applyEnv() error {
	setString(&c.Admin.APIKey, "ADMIN_API_KEY")
	setString(&c.Payment.SecretKey, "STRIPE_SECRET_KEY")
	setString(&c.Payment.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&c.Payment.BankIBAN, "BANK_IBAN")
	setString(&c.Server.ClientURL, "CLIENT_URL")
	setString(&c.Storage.DataDir, "DATA_DIR")
	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Notifications.RabbitMQURL, "RABBITMQ_URL")
	setString(&c.Notifications.AdminCopy, "EMAIL_NOTIFICATION_TO")
	setString(&c.Logs.Level, "LOG_LEVEL")

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RateLimit.RedisAddr = v
		c.RateLimit.Enabled = true
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Server.HTTPPort},
		{"DEFAULT_SESSION_CAPACITY", &c.Booking.DefaultCapacity},
		{"STRIPE_PENDING_TIMEOUT_MINUTES", &c.Booking.PendingTimeoutMinutes},
	}
	for _, item := range ints {
		if err := setInt(item.dst, item.key); err != nil {
			return err
		}
	}

	c.applyPriceOverrides(os.Environ())
	return nil
}

// applyPriceOverrides читает STRIPE_PRICE_ID_<ФОРМАЦИЯ>. Имя формации в переменной записано
// в верхнем регистре с "_" вместо прочих символов, поэтому ключ сопоставляется с уже
// известными в конфигурации формациями, а иначе сохраняется в нижнем регистре через "-".
func (c *Config) applyPriceOverrides(environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, priceOverridePrefix) || value == "" {
			continue
		}
		if c.Payment.PriceOverrides == nil {
			c.Payment.PriceOverrides = make(map[string]string)
		}
		suffix := strings.TrimPrefix(key, priceOverridePrefix)
		c.Payment.PriceOverrides[c.formationKey(suffix)] = value
	}
}

func (c *Config) formationKey(envSuffix string) string {
	for id := range c.Payment.PriceOverrides {
		if EnvFormationSuffix(id) == envSuffix {
			return id
		}
	}
	return strings.ReplaceAll(strings.ToLower(envSuffix), "_", "-")
}

// EnvFormationSuffix имя формации в виде суффикса переменной окружения
func EnvFormationSuffix(formationID string) string {
	var b strings.Builder
	for _, r := range formationID {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return strings.ToUpper(b.String())
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = n
	return nil
}
