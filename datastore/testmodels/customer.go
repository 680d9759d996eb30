package testmodels

import (
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/registry"
)

// Customer has an identifier, one persisted field and one excluded field.
type Customer struct {
	ID    *key.Key
	Name  string
	Cache string
}

func init() {
	registry.RegisterSchema(registry.NewSchema(
		registry.Identifier("ID", func(c *Customer) **key.Key { return &c.ID }),
		registry.Property("Name", func(c *Customer) *string { return &c.Name }),
		registry.Excluded[Customer]("Cache"),
	))
}
