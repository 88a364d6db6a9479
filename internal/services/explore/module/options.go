package module

import "bikeshare/internal/platform/config"

// Options holds configuration settings for the explore module
type Options struct {
	Timings bool
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("BIKESHARE_")
	return Options{
		Timings: ef.MayBool("TIMINGS", true),
	}
}
