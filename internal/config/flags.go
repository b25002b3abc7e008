package config

import "flag"

// Flags holds command-line overrides registered on a FlagSet.
type Flags struct {
	Config    *string
	Debug     *bool
	SortOrder *string
	LogFile   *string
}

// RegisterFlags registers config override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config:    fs.String("config", "", "Path to config file (.yaml or .toml)"),
		Debug:     fs.Bool("debug", false, "Enable debug logging"),
		SortOrder: fs.String("sort-order", "", "Polygon sort order: back_to_front or front_to_back"),
		LogFile:   fs.String("log-file", "", "Write logs to this file as well"),
	}
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil || f.Config == nil {
		return ""
	}
	return *f.Config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug != nil && *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.SortOrder != nil && *f.SortOrder != "" {
		cfg.Render.SortOrder = *f.SortOrder
	}
	if f.LogFile != nil && *f.LogFile != "" {
		cfg.Logging.LogFile = *f.LogFile
	}
}
