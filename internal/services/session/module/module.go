// Package module wires the session controller from injected ports
package module

import (
	"bikeshare/internal/modkit"
	dom "bikeshare/internal/services/session/domain"
	"bikeshare/internal/services/session/service"
)

// Ports declares the ports the session module requires, injected with modkit.WithPorts
type Ports struct {
	Prompter dom.Prompter
	Loader   dom.Loader
	Reporter dom.Reporter
	Guards   dom.Guards
	Renderer dom.Renderer

	// PageSize overrides the configured page size when positive
	PageSize int
}

// Exposed are the ports the session module provides
type Exposed struct {
	Runner dom.RunnerPort
}

// Module implements the session module
type Module struct {
	deps  modkit.Deps
	name  string
	ports Exposed
}

// New constructs the session module; it panics unless WithPorts supplies Ports
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("session")}, opts...)...)
	injected := modkit.PortsAs[Ports](b)

	o := FromConfig(deps.Cfg)
	if injected.PageSize > 0 {
		o.PageSize = injected.PageSize
	}

	ctl := service.New(service.Options{
		Prompter: injected.Prompter,
		Loader:   injected.Loader,
		Reporter: injected.Reporter,
		Guards:   injected.Guards,
		Renderer: injected.Renderer,
		PageSize: o.PageSize,
	})
	return &Module{deps: deps, name: b.Name, ports: Exposed{Runner: ctl}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
