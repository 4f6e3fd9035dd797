package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Logs          LogsConfig          `toml:"logs"`
	Storage       StorageConfig       `toml:"storage"`
	Database      DatabaseConfig      `toml:"database"`
	Booking       BookingConfig       `toml:"booking"`
	Admin         AdminConfig         `toml:"admin"`
	Payment       PaymentConfig       `toml:"payment"`
	Notifications NotificationsConfig `toml:"notifications"`
	RateLimit     RateLimitConfig     `toml:"ratelimit"`
	Metrics       MetricsConfig       `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	ClientURL       string `toml:"client_url"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Поддерживаемые хранилища документов
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// StorageConfig настройки хранилища документов
type StorageConfig struct {
	Backend     string `toml:"backend"`
	DataDir     string `toml:"data_dir"`
	CatalogFile string `toml:"catalog_file"` // пустой путь - встроенный каталог
}

// DatabaseConfig настройки PostgreSQL (используется при storage.backend = "postgres")
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// BookingConfig параметры бронирования
type BookingConfig struct {
	DefaultCapacity       int `toml:"default_capacity"`
	PendingTimeoutMinutes int `toml:"pending_timeout_minutes"`
}

// PendingTimeout срок ожидания оплаты картой
func (c BookingConfig) PendingTimeout() time.Duration {
	return time.Duration(c.PendingTimeoutMinutes) * time.Minute
}

// AdminConfig доступ к административным маршрутам
type AdminConfig struct {
	APIKey string `toml:"api_key"`
}

// PaymentConfig настройки оплаты
type PaymentConfig struct {
	SecretKey          string `toml:"secret_key"`
	WebhookSecret      string `toml:"webhook_secret"`
	Currency           string `toml:"currency"`
	SuccessPath        string `toml:"success_path"`
	CancelPath         string `toml:"cancel_path"`
	CheckoutTTLMinutes int    `toml:"checkout_ttl_minutes"`
	BankIBAN           string `toml:"bank_iban"`

	// Ключ - id формации, значение - id цены шлюза ("price_...") или сумма
	PriceOverrides map[string]string `toml:"price_overrides"`
}

// NotificationsConfig настройки уведомлений клиентам
type NotificationsConfig struct {
	BusinessName    string `toml:"business_name"`
	ContactEmail    string `toml:"contact_email"`
	AdminCopy       string `toml:"admin_copy"`
	DefaultLocation string `toml:"default_location"`
	RabbitMQURL     string `toml:"rabbitmq_url"` // пустой адрес - только запись в лог
	Queue           string `toml:"queue"`
	Workers         int    `toml:"workers"`
	QueueSize       int    `toml:"queue_size"`
	SendTimeout     int    `toml:"send_timeout"`
}

// RateLimitConfig ограничение частоты публичных запросов (token bucket в Redis)
type RateLimitConfig struct {
	Enabled          bool   `toml:"enabled"`
	RedisAddr        string `toml:"redis_addr"`
	RedisPassword    string `toml:"redis_password"`
	RedisDB          int    `toml:"redis_db"`
	Capacity         int    `toml:"capacity"`
	RefillTokens     int    `toml:"refill_tokens"`
	RefillIntervalMs int    `toml:"refill_interval_ms"`
	TTLSeconds       int    `toml:"ttl_seconds"`
	Prefix           string `toml:"prefix"`

	// Адреса или подсети прокси, которым доверяется X-Forwarded-For.
	// Пустой список - заголовок игнорируется, ключом служит адрес соединения.
	TrustedProxies []string `toml:"trusted_proxies"`
}

// TrustedProxyNets разбирает trusted_proxies; одиночный адрес становится подсетью из одного хоста
func (c RateLimitConfig) TrustedProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		v := strings.TrimSpace(raw)
		if _, n, err := net.ParseCIDR(v); err == nil {
			nets = append(nets, n)
			continue
		}
		ip := net.ParseIP(v)
		if ip == nil {
			return nil, fmt.Errorf("invalid trusted proxy %q", raw)
		}
		bits := 8 * net.IPv6len
		if ip4 := ip.To4(); ip4 != nil {
			ip, bits = ip4, 8*net.IPv4len
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets, nil
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        4000,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			ClientURL:       "http://localhost:5173",
		},
		Logs: LogsConfig{Level: "info"},
		Storage: StorageConfig{
			Backend: StorageFile,
			DataDir: "data",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Booking: BookingConfig{
			DefaultCapacity:       12,
			PendingTimeoutMinutes: 5,
		},
		Payment: PaymentConfig{
			Currency:           "eur",
			SuccessPath:        "/thank-you",
			CancelPath:         "/",
			CheckoutTTLMinutes: 30,
			BankIBAN:           "FR76 XXXX XXXX XXXX XXXX XXXX X",
		},
		Notifications: NotificationsConfig{
			BusinessName: "Atelier",
			Queue:        "reservation.notifications",
			Workers:      2,
			QueueSize:    256,
			SendTimeout:  10,
		},
		RateLimit: RateLimitConfig{
			Capacity:         60,
			RefillTokens:     1,
			RefillIntervalMs: 1000,
			TTLSeconds:       600,
			Prefix:           "rl",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			ServiceName: "atelier-booking",
			Path:        "/metrics",
		},
	}
}

// Load читает .env (если есть), затем TOML файл поверх значений по умолчанию,
// затем переменные окружения. Отсутствующий файл конфигурации не является ошибкой.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}

	switch c.Storage.Backend {
	case StorageFile:
		if c.Storage.DataDir == "" {
			errs = append(errs, errors.New("storage.data_dir is required for the file backend"))
		}
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, errors.New("database.host and database.dbname are required for the postgres backend"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be file, postgres or memory, got %q", c.Storage.Backend))
	}

	if c.Booking.DefaultCapacity < 0 {
		errs = append(errs, errors.New("booking.default_capacity must be non-negative"))
	}
	if c.Booking.PendingTimeoutMinutes <= 0 {
		errs = append(errs, errors.New("booking.pending_timeout_minutes must be positive"))
	}

	if c.Payment.WebhookSecret != "" && c.Payment.SecretKey == "" {
		errs = append(errs, errors.New("payment.webhook_secret requires payment.secret_key"))
	}
	if c.Payment.CheckoutTTLMinutes != 0 && c.Payment.CheckoutTTLMinutes < 30 {
		// минимальный срок жизни страницы оплаты у Stripe - 30 минут
		errs = append(errs, errors.New("payment.checkout_ttl_minutes must be 0 or at least 30"))
	}

	if c.Notifications.Workers <= 0 || c.Notifications.QueueSize <= 0 {
		errs = append(errs, errors.New("notifications.workers and notifications.queue_size must be positive"))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RedisAddr == "" {
			errs = append(errs, errors.New("ratelimit.redis_addr is required when rate limiting is enabled"))
		}
		if c.RateLimit.Capacity < 1 || c.RateLimit.RefillTokens < 1 || c.RateLimit.RefillIntervalMs <= 0 {
			errs = append(errs, errors.New("ratelimit.capacity, refill_tokens and refill_interval_ms must be positive"))
		}
		if _, err := c.RateLimit.TrustedProxyNets(); err != nil {
			errs = append(errs, fmt.Errorf("ratelimit.trusted_proxies: %w", err))
		}
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		errs = append(errs, errors.New("metrics.path is required when metrics are enabled"))
	}

	return errors.Join(errs...)
}
