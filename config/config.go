package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"3s" envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Metrics struct {
	Addr string `default:":2112" envconfig:"ADDR"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"streams-app" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

type Kafka struct {
	Brokers     []string       `default:"kafka:9092" envconfig:"BROKERS"`
	GroupID     string         `default:"events" envconfig:"GROUP_ID"`
	StartOffset string         `default:"last" envconfig:"START_OFFSET"`
	Partitions  map[string]int `default:"events:3" envconfig:"PARTITIONS"`

	// CommitInterval — период фонового коммита оффсетов группой.
	CommitInterval time.Duration `default:"5s" envconfig:"COMMIT_INTERVAL"`
}

type Retry struct {
	InitialDelay time.Duration `default:"500ms" envconfig:"INITIAL_DELAY"`
	MaxDelay     time.Duration `default:"30s" envconfig:"MAX_DELAY"`
	ResetWindow  time.Duration `default:"5m" envconfig:"RESET_WINDOW"`
	MaxRetries   int           `default:"-1" envconfig:"MAX_RETRIES"`
}

type Group struct {
	Workers             int           `default:"0" envconfig:"WORKERS"`
	ShutdownOnFatal     bool          `default:"false" envconfig:"SHUTDOWN_ON_FATAL"`
	ShutdownGracePeriod time.Duration `default:"30s" envconfig:"SHUTDOWN_GRACE_PERIOD"`
	ProcessTimeout      time.Duration `default:"5s" envconfig:"PROCESS_TIMEOUT"`
	SkipMalformed       bool          `default:"true" envconfig:"SKIP_MALFORMED"`
}

type Store struct {
	Capacity int           `default:"1000" envconfig:"CAPACITY"`
	TTL      time.Duration `default:"10m" envconfig:"TTL"`
}

type Config struct {
	Logger  Logger
	HTTP    HTTP
	Metrics Metrics
	Tracing Tracing
	Kafka   Kafka
	Retry   Retry
	Group   Group
	Store   Store
}

// Load — конфигурация из окружения с префиксом STREAMS.
func Load() (Config, error) {
	return LoadWithPrefix("STREAMS")
}

// LoadWithPrefix — то же с произвольным префиксом (удобно в тестах).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
