// Package source selects the record source cities are loaded from
package source

import (
	"bikeshare/internal/adapters/source/chsource"
	"bikeshare/internal/adapters/source/csvfile"
	"bikeshare/internal/adapters/source/pgsource"
	"bikeshare/internal/modkit"
	"bikeshare/internal/platform/config"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/validate"
	dom "bikeshare/internal/services/session/domain"
)

// Source kinds
const (
	KindCSV = "csv"
	KindPG  = "pg"
	KindCH  = "ch"
)

// Options selects and configures the record source
type Options struct {
	Kind    string `env:"BIKESHARE_SOURCE" validate:"oneof=csv pg ch"`
	DataDir string `env:"BIKESHARE_DATA_DIR" validate:"required"`
	Table   string `env:"BIKESHARE_TABLE" validate:"required"`
}

// FromConfig reads the source settings
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("BIKESHARE_")
	return Options{
		Kind:    sf.MayEnum("SOURCE", KindCSV, KindCSV, KindPG, KindCH),
		DataDir: sf.MayString("DATA_DIR", "."),
		Table:   sf.MayString("TABLE", pgsource.DefaultTable),
	}
}

// New returns the loader for o.Kind
// The database kinds need the matching queryer on deps
func New(deps modkit.Deps, o Options) (dom.Loader, error) {
	if err := validate.Struct(o); err != nil {
		return nil, err
	}
	switch o.Kind {
	case KindPG:
		if deps.PG == nil {
			return nil, perr.WithField(perr.InvalidArgf("source %q needs a postgres connection", o.Kind), "BIKESHARE_PGSQL_DBURL")
		}
		return pgsource.New(deps.PG, o.Table), nil
	case KindCH:
		if deps.CH == nil {
			return nil, perr.WithField(perr.InvalidArgf("source %q needs a clickhouse connection", o.Kind), "BIKESHARE_CLICKHOUSE_DBURL")
		}
		src, err := chsource.New(deps.CH, o.Table)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return csvfile.New(o.DataDir), nil
	}
}
