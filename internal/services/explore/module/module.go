// Package module implements the explore service module
package module

import (
	"bikeshare/internal/modkit"
	"bikeshare/internal/services/explore/domain"
	"bikeshare/internal/services/explore/service"
)

// Ports exposed by the explore module
type Ports struct {
	Reports domain.ReportPort
}

// Module implements the explore service module
type Module struct {
	deps  modkit.Deps
	name  string
	ports Ports
}

// New constructs a new explore module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("explore")}, opts...)...)
	o := FromConfig(deps.Cfg)

	svc := service.New(service.Config{Timings: o.Timings})
	return &Module{deps: deps, name: b.Name, ports: Ports{Reports: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
