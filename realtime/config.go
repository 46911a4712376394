package realtime

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups the channel tunables. Values come from environment
// variables with the prefix "CL_REALTIME_".
type Config struct {
	DialTimeout   time.Duration `envconfig:"DIAL_TIMEOUT"   default:"10s"`
	ReadLimit     int64         `envconfig:"READ_LIMIT"     default:"65536"`
	ReconnectBase time.Duration `envconfig:"RECONNECT_BASE" default:"500ms"`
	ReconnectMax  time.Duration `envconfig:"RECONNECT_MAX"  default:"30s"`
}

// LoadConfig populates Config from environment variables (prefix CL_REALTIME).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("CL_REALTIME", &c)
}

func (c Config) withDefaults() Config {
	if c.DialTimeout <= 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = 65536
	}
	if c.ReconnectBase <= 0 {
		c.ReconnectBase = 500 * time.Millisecond
	}
	if c.ReconnectMax <= 0 {
		c.ReconnectMax = 30 * time.Second
	}
	return c
}
