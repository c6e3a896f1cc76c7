package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the process needs up front. Flags fill the target
// options, the environment fills the notifier credentials. The core loop
// never reads any of this ambiently; it gets an immutable Target.
type Config struct {
	URL              string        `validate:"required,url,http_protocol"`
	Interval         time.Duration `validate:"gt=0"`
	LatencyThreshold time.Duration `validate:"gt=0"`
	ProbeTimeout     time.Duration `validate:"gt=0,gtefield=LatencyThreshold"`
	OnFailure        string        `validate:"oneof=continue terminate"`

	// First probe must succeed before the loop starts.
	RequireInitialSuccess bool

	// SNS notifier settings, opaque to the core loop.
	SNSEnabled bool
	AWSProfile string `validate:"required_if=SNSEnabled true"`
	CellPhone  string `validate:"required_if=SNSEnabled true,omitempty,cell_phone"`
}

func Default() Config {
	return Config{
		Interval:         5 * time.Minute,
		LatencyThreshold: 5 * time.Second,
		ProbeTimeout:     10 * time.Second,
		OnFailure:        "continue",
	}
}

// MergeEnv fills notifier credentials from the environment, loading a .env
// file first when one is present. Values already set (e.g. by flags) win.
func (c *Config) MergeEnv() {
	_ = godotenv.Load()

	if c.AWSProfile == "" {
		c.AWSProfile = os.Getenv("AWS_PROFILE")
	}
	if c.CellPhone == "" {
		c.CellPhone = os.Getenv("CELL_PHONE")
	}
}
