package config

// Settings represents a complete migration settings file
type Settings struct {
	Output  OutputSettings `yaml:"output"`
	Options MigrateOptions `yaml:"settings"`
	Filters []Filter       `yaml:"filters"`
}

// OutputSettings contains the fixed columns of every exported row
type OutputSettings struct {
	Type     string `yaml:"type"`
	Priority int    `yaml:"priority"` // 1 is highest, 4 is lowest
	Indent   int    `yaml:"indent"`
	DateLang string `yaml:"date_lang"`
	Timezone string `yaml:"timezone"`
}

// MigrateOptions contains migration behaviour toggles
type MigrateOptions struct {
	Deduplication bool `yaml:"deduplication"`
}

// Filter represents a content filter rule
type Filter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
