/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"context"
	"fmt"
	"testing"

	"github.com/suparena/entitymapper/datastore/mock"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/registry"
)

// Test types
type TestUser struct {
	ID    *key.Key
	Name  string
	Email string
}

type TestProduct struct {
	ID    *key.Key
	Name  string
	Price float64
}

type unregisteredType struct{}

func init() {
	registry.RegisterSchema(registry.NewSchema(
		registry.Identifier("ID", func(u *TestUser) **key.Key { return &u.ID }),
		registry.Property("Name", func(u *TestUser) *string { return &u.Name }),
		registry.Property("Email", func(u *TestUser) *string { return &u.Email }),
	))
	registry.RegisterSchema(registry.NewSchema(
		registry.Identifier("ID", func(p *TestProduct) **key.Key { return &p.ID }),
		registry.Property("Name", func(p *TestProduct) *string { return &p.Name }),
		registry.Property("Price", func(p *TestProduct) *float64 { return &p.Price }),
	))
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("DifferentTypes", func(t *testing.T) {
		store := mock.New()
		rs := NewRepositories(store)

		users, err := For[TestUser](rs)
		if err != nil {
			t.Fatalf("Failed to get user repository: %v", err)
		}
		products, err := For[TestProduct](rs)
		if err != nil {
			t.Fatalf("Failed to get product repository: %v", err)
		}

		u := &TestUser{Name: "Ann", Email: "ann@example.com"}
		if err := users.Save(ctx, u); err != nil {
			t.Fatalf("Failed to save user: %v", err)
		}
		p := &TestProduct{Name: "Lamp", Price: 19.5}
		if err := products.Save(ctx, p); err != nil {
			t.Fatalf("Failed to save product: %v", err)
		}

		// Both repositories share one back end
		if store.Count() != 2 {
			t.Fatalf("Expected 2 entities, got %d", store.Count())
		}
		if rs.Backend() != store {
			t.Fatal("Backend mismatch")
		}

		kinds := rs.Kinds()
		if len(kinds) != 2 || kinds[0] != "TestProduct" || kinds[1] != "TestUser" {
			t.Fatalf("Expected [TestProduct TestUser], got %v", kinds)
		}
	})

	t.Run("SameRepositoryReturned", func(t *testing.T) {
		rs := NewRepositories(mock.New())

		first, err := For[TestUser](rs)
		if err != nil {
			t.Fatalf("Failed to get repository: %v", err)
		}
		second, err := For[TestUser](rs)
		if err != nil {
			t.Fatalf("Failed to get repository: %v", err)
		}
		if first != second {
			t.Fatal("Expected the same repository instance")
		}
	})

	t.Run("UnregisteredType", func(t *testing.T) {
		rs := NewRepositories(mock.New())
		if _, err := For[unregisteredType](rs); err == nil {
			t.Fatal("Expected error for unregistered type")
		}
		if len(rs.Kinds()) != 0 {
			t.Fatalf("Expected no kinds, got %v", rs.Kinds())
		}
	})
}

func TestBackends(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		backends := NewBackends()

		primary := mock.New()
		if err := backends.Register("primary", primary); err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		retrieved, err := backends.Get("primary")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		if retrieved != primary {
			t.Fatal("Retrieved back end mismatch")
		}

		if _, err := backends.Get("archive"); err == nil {
			t.Fatal("Expected error for unknown back end")
		}
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		backends := NewBackends()
		if err := backends.Register("primary", mock.New()); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}
		if err := backends.Register("primary", mock.New()); err == nil {
			t.Fatal("Expected duplicate registration error")
		}
	})
}

func TestThreadSafety(t *testing.T) {
	backends := NewBackends()
	rs := NewRepositories(mock.New())
	done := make(chan bool)

	// Concurrent writes
	for i := 0; i < 10; i++ {
		go func(id int) {
			backends.Register(fmt.Sprintf("store%d", id), mock.New())
			done <- true
		}(i)
	}

	// Concurrent repository lookups
	for i := 0; i < 10; i++ {
		go func() {
			if _, err := For[TestUser](rs); err != nil {
				t.Errorf("For failed: %v", err)
			}
			backends.Names()
			done <- true
		}()
	}

	// Wait for completion
	for i := 0; i < 20; i++ {
		<-done
	}

	// Verify all back ends registered
	names := backends.Names()
	if len(names) != 10 {
		t.Fatalf("Expected 10 back ends, got %d", len(names))
	}
	if kinds := rs.Kinds(); len(kinds) != 1 || kinds[0] != "TestUser" {
		t.Fatalf("Expected [TestUser], got %v", kinds)
	}
}
