package outbox

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups the outbox tunables. Values come from environment variables
// with the prefix "CL_OUTBOX_". Example: CL_OUTBOX_SHARDS=8.
type Config struct {
	Shards         int           `envconfig:"SHARDS"          default:"2"`
	QueueSize      int           `envconfig:"QUEUE_SIZE"      default:"64"`
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT" default:"100ms"`

	// ErrorHandler is called synchronously after a job is given up on
	// (permanent failure, retries exhausted, or context cancelled).
	// Leave nil to ignore.
	ErrorHandler func(error) `envconfig:"-"`

	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"5"`
	BaseBackoff time.Duration `envconfig:"BASE_BACKOFF" default:"200ms"`
	MaxInterval time.Duration `envconfig:"MAX_INTERVAL" default:"10s"`
}

// LoadConfig populates Config from environment variables (prefix CL_OUTBOX).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("CL_OUTBOX", &c)
}
