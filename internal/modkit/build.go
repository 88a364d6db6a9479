package modkit

// Built is a plain struct with the fields modules care about
type Built struct {
	Name  string
	Ports any
}

// Build applies Option funcs in order; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{Name: c.name, Ports: c.ports}
}

// PortsAs asserts the injected ports to T, panicking with the module name on miswiring
func PortsAs[T any](b Built) T {
	p, ok := b.Ports.(T)
	if !ok {
		panic(b.Name + " module: expected WithPorts of a different type")
	}
	return p
}
