package relq

import "github.com/BurntSushi/toml"

// Config holds the tunables a Database is constructed with. None of
// spec.md's core semantics depend on these; they exist for the same
// reason the teacher's engine.Config does — knobs an embedder sets once
// at startup, not state threaded through statement execution.
type Config struct {
	// MaxColumnWidth caps the declared length of a STRING[n]/BYTES[n]
	// column; 0 means unlimited.
	MaxColumnWidth int

	// AutoincrementStart is the first value handed out for an empty
	// AUTOINCREMENT column. Not currently consulted by table.StorageTable,
	// which always starts at 1 (spec.md §8 testable property 4); kept as
	// a documented knob for a future per-table override.
	AutoincrementStart int32

	// PlanCacheSize caps the number of distinct SELECT plans a Database
	// memoizes (database.go's hashstructure-keyed cache). 0 disables the
	// cache.
	PlanCacheSize int
}

// DefaultConfig returns the configuration NewDefault builds a Database
// with.
func DefaultConfig() *Config {
	return &Config{
		MaxColumnWidth:     0,
		AutoincrementStart: 1,
		PlanCacheSize:      256,
	}
}

// LoadConfig reads a TOML file into a Config, starting from
// DefaultConfig so an omitted key keeps its default.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
