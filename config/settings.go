package config

import (
	"time"

	cleanenvport "github.com/finwire-go/fwf/config/cleanenv-port"
	"github.com/finwire-go/fwf/logger"
	"github.com/finwire-go/fwf/notify"
	"github.com/finwire-go/fwf/retry"
)

// Settings is the validated configuration surface of the toolkit: retry
// policy defaults, debounce quiet windows, notification backend, and logger
// engine.
type Settings struct {
	Logger   LoggerSettings   `yaml:"logger"`
	Retry    RetrySettings    `yaml:"retry"`
	Debounce DebounceSettings `yaml:"debounce"`
	Notify   NotifySettings   `yaml:"notify"`
}

// LoggerSettings selects the logging engine and level.
type LoggerSettings struct {
	Engine string `yaml:"engine" env:"LOGGER_ENGINE" env-default:"zerolog" validate:"required,oneof=zerolog zap logrus slog"`
	Level  string `yaml:"level" env:"LOGGER_LEVEL" env-default:"info" validate:"required,oneof=debug info warn error"`
	File   string `yaml:"file" env:"LOGGER_FILE"`
}

// RetrySettings holds the default retry policy for wrapped operations.
type RetrySettings struct {
	MaxRetries int           `yaml:"max_retries" env:"RETRY_MAX_RETRIES" validate:"min=0"`
	Delay      time.Duration `yaml:"delay" env:"RETRY_DELAY" env-default:"1s"`
	Backoff    float64       `yaml:"backoff" env:"RETRY_BACKOFF" env-default:"1" validate:"omitempty,gte=1"`
}

// DebounceSettings holds the default quiet windows for the debounce
// primitives.
type DebounceSettings struct {
	ValueQuiet time.Duration `yaml:"value_quiet" env:"DEBOUNCE_VALUE_QUIET" env-default:"300ms" validate:"min=0"`
	CallQuiet  time.Duration `yaml:"call_quiet" env:"DEBOUNCE_CALL_QUIET" env-default:"300ms" validate:"min=0"`
}

// NotifySettings selects and parameterizes the notification backend.
type NotifySettings struct {
	Backend string `yaml:"backend" env:"NOTIFY_BACKEND" env-default:"log" validate:"required,oneof=log kafka rabbit redis noop"`

	KafkaBrokers []string `yaml:"kafka_brokers" env:"NOTIFY_KAFKA_BROKERS"`
	KafkaTopic   string   `yaml:"kafka_topic" env:"NOTIFY_KAFKA_TOPIC"`

	RabbitURL      string `yaml:"rabbit_url" env:"NOTIFY_RABBIT_URL"`
	RabbitExchange string `yaml:"rabbit_exchange" env:"NOTIFY_RABBIT_EXCHANGE"`

	RedisAddr     string `yaml:"redis_addr" env:"NOTIFY_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"NOTIFY_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"NOTIFY_REDIS_DB"`
	RedisChannel  string `yaml:"redis_channel" env:"NOTIFY_REDIS_CHANNEL"`
}

// LoadSettings reads and validates Settings from the given file path.
func LoadSettings(path string) (*Settings, error) {
	var s Settings
	if err := cleanenvport.LoadPath(path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Options converts the retry settings into Operation options.
func (s RetrySettings) Options() []retry.Option {
	return []retry.Option{
		retry.WithMaxRetries(s.MaxRetries),
		retry.WithDelay(s.Delay),
		retry.WithBackoff(s.Backoff),
	}
}

// Strategy converts the retry settings into a package-helper Strategy.
// MaxRetries maps onto total attempts.
func (s RetrySettings) Strategy() retry.Strategy {
	return retry.Strategy{
		Attempts: s.MaxRetries + 1,
		Delay:    s.Delay,
		Backoff:  s.Backoff,
	}
}

// NotifyConfig converts the notify settings into a notify.Config using the
// given logger and publish retry strategy.
func (s NotifySettings) NotifyConfig(log logger.Logger, strat retry.Strategy) notify.Config {
	return notify.Config{
		Backend:        notify.Backend(s.Backend),
		Logger:         log,
		Strategy:       strat,
		KafkaBrokers:   s.KafkaBrokers,
		KafkaTopic:     s.KafkaTopic,
		RabbitURL:      s.RabbitURL,
		RabbitExchange: s.RabbitExchange,
		RedisAddr:      s.RedisAddr,
		RedisPassword:  s.RedisPassword,
		RedisDB:        s.RedisDB,
		RedisChannel:   s.RedisChannel,
	}
}

// LoggerOptions converts the logger settings into logger options.
func (s LoggerSettings) LoggerOptions() []logger.Option {
	opts := []logger.Option{logger.WithLevel(logger.ParseLevel(s.Level))}
	if s.File != "" {
		opts = append(opts, logger.WithFile(s.File))
	}
	return opts
}
