package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Input and output
	InputFile    string `long:"input" short:"i" env:"INPUT_FILE" default:"./Reminders.html" description:"Reminders export (HTML) to migrate"`
	OutputFile   string `long:"output" short:"o" env:"OUTPUT_FILE" default:"./out.csv" description:"CSV file to write task rows to"`
	SettingsFile string `long:"settings" env:"SETTINGS_FILE" default:"./settings.yml" description:"Migration settings file (optional)"`
	DBPath       string `long:"db-path" env:"DB_PATH" default:"./reminders-comb.db" description:"SQLite ledger of exported tasks"`

	// Run mode
	Now    string `long:"now" env:"NOW" description:"Reference time for due-date filtering (default: current time)"`
	DryRun bool   `long:"dry-run" description:"Print the rows without writing the CSV or the ledger"`
	Scan   bool   `long:"scan" description:"Print the distinct values seen per field and exit"`
	Serve  bool   `long:"serve" env:"SERVE" description:"Run the preview HTTP API instead of a one-shot migration"`

	// HTTP server
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses the process arguments. It returns nil, nil when help was shown.
func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses args, or the process arguments when args is nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		InputFile:    raw.InputFile,
		OutputFile:   raw.OutputFile,
		SettingsFile: raw.SettingsFile,
		DBPath:       raw.DBPath,
		DryRun:       raw.DryRun,
		Scan:         raw.Scan,
		Serve:        raw.Serve,
		Port:         raw.Port,
		APIAccessKey: raw.APIAccessKey,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	if raw.Now != "" {
		now, err := dateparse.ParseLocal(raw.Now)
		if err != nil {
			return nil, fmt.Errorf("invalid --now value %q: %w", raw.Now, err)
		}
		cfg.Now = &now
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
