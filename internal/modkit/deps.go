package modkit

import (
	"bikeshare/internal/modkit/repokit"
	"bikeshare/internal/platform/config"
	"bikeshare/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG and CH are nil unless the matching record source is selected
	PG repokit.Queryer
	CH repokit.Queryer
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check the optional stores
func (d Deps) ZeroOK() bool { return true }

// Named returns a child logger tagged with a module component
func (d Deps) Named(component string) logger.Logger {
	return d.Log.With().Str("component", component).Logger()
}
