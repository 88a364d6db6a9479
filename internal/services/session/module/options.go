package module

import (
	"bikeshare/internal/core/paginate"
	"bikeshare/internal/platform/config"
)

// Options holds configuration settings for the session module
type Options struct {
	PageSize int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("BIKESHARE_")
	return Options{
		PageSize: sf.MayPositiveInt("PAGE_SIZE", paginate.DefaultSize),
	}
}
