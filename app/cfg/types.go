package cfg

import (
	"time"
)

type Cfg struct {
	// Input and output
	InputFile    string
	OutputFile   string
	SettingsFile string
	DBPath       string

	// Run mode
	Now    *time.Time
	DryRun bool
	Scan   bool
	Serve  bool

	// HTTP server
	Port         string
	APIAccessKey string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

// Clock returns the configured --now override or the current time.
func (c *Cfg) Clock() time.Time {
	if c.Now != nil {
		return *c.Now
	}
	return time.Now()
}
