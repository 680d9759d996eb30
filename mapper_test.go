/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper_test

import (
	"errors"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymapper"
	"github.com/suparena/entitymapper/datastore/testmodels"
	storeerrors "github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/registry"
	"github.com/suparena/entitymapper/storagemodels"
)

// note has neither an identifier nor a parent reference
type note struct {
	Text  string
	Score float64
}

// comment has a parent reference but no identifier
type comment struct {
	On   *key.Key
	Body string
}

func init() {
	registry.RegisterSchema(registry.NewSchema(
		registry.Property("Text", func(n *note) *string { return &n.Text }),
		registry.Property("Score", func(n *note) *float64 { return &n.Score }),
	))
	registry.RegisterSchema(registry.NewSchema(
		registry.ParentReference("On", func(c *comment) **key.Key { return &c.On }),
		registry.Property("Body", func(c *comment) *string { return &c.Body }),
	))
}

func mustMapper[T any](t *testing.T) *entitymapper.Mapper[T] {
	t.Helper()
	m, err := entitymapper.MapperFor[T]()
	require.NoError(t, err)
	return m
}

func TestToEntity(t *testing.T) {
	m := mustMapper[testmodels.Customer](t)

	t.Run("new record", func(t *testing.T) {
		mapping, err := m.ToEntity(&testmodels.Customer{Name: "Ann", Cache: "x"})
		require.NoError(t, err)

		assert.Nil(t, mapping.ExistingKey)
		assert.Nil(t, mapping.ParentKey)
		assert.Equal(t, "Customer", mapping.Kind)
		assert.Equal(t, storagemodels.PropertyMap{"Name": "Ann"}, mapping.Properties)

		e := mapping.Entity()
		assert.True(t, e.Incomplete())
		assert.Equal(t, "Customer", e.Kind)
	})

	t.Run("existing record", func(t *testing.T) {
		k := key.New("Customer", "42", nil)
		mapping, err := m.ToEntity(&testmodels.Customer{ID: k, Name: "Ann"})
		require.NoError(t, err)

		assert.Same(t, k, mapping.ExistingKey)
		assert.Same(t, k, mapping.Entity().Key)
		assert.NotContains(t, mapping.Properties, "ID")
	})

	t.Run("parent reference", func(t *testing.T) {
		system := key.New("RatingSystem", "elo", nil)
		mapping, err := mustMapper[testmodels.Rating](t).ToEntity(&testmodels.Rating{System: system, Player: "p1", Rank: 3})
		require.NoError(t, err)

		assert.Nil(t, mapping.ExistingKey)
		assert.Same(t, system, mapping.ParentKey)
		assert.Same(t, system, mapping.Entity().Parent)
		assert.NotContains(t, mapping.Properties, "System")
		assert.NotContains(t, mapping.Properties, "Rank")
		assert.Equal(t, []string{"Games", "Player", "Score", "Tags"}, mapping.Properties.Names())
	})

	t.Run("does not modify the record", func(t *testing.T) {
		rec := &testmodels.Customer{Name: "Ann", Cache: "x"}
		_, err := m.ToEntity(rec)
		require.NoError(t, err)
		assert.Equal(t, &testmodels.Customer{Name: "Ann", Cache: "x"}, rec)
	})

	t.Run("nil record", func(t *testing.T) {
		_, err := m.ToEntity(nil)
		assert.True(t, storeerrors.IsValidationError(err))
	})
}

func TestFromEntity(t *testing.T) {
	m := mustMapper[testmodels.Customer](t)
	k := key.New("Customer", "42", nil)

	t.Run("assigns key and properties", func(t *testing.T) {
		c, err := m.FromEntity(&storagemodels.Entity{Key: k, Properties: storagemodels.PropertyMap{"Name": "Ann"}})
		require.NoError(t, err)
		assert.Same(t, k, c.ID)
		assert.Equal(t, "Ann", c.Name)
		assert.Empty(t, c.Cache)
	})

	t.Run("missing properties keep defaults", func(t *testing.T) {
		c, err := m.FromEntity(&storagemodels.Entity{Key: k})
		require.NoError(t, err)
		assert.Equal(t, "", c.Name)
	})

	t.Run("excluded properties are ignored", func(t *testing.T) {
		c, err := m.FromEntity(&storagemodels.Entity{Key: k, Properties: storagemodels.PropertyMap{"Cache": "x"}})
		require.NoError(t, err)
		assert.Empty(t, c.Cache)
	})

	t.Run("restores parent from key", func(t *testing.T) {
		system := key.New("RatingSystem", "elo", nil)
		r, err := mustMapper[testmodels.Rating](t).FromEntity(&storagemodels.Entity{Key: key.New("Rating", "1", system)})
		require.NoError(t, err)
		assert.True(t, r.System.Equal(system))
	})

	t.Run("converts back-end shapes", func(t *testing.T) {
		r, err := mustMapper[testmodels.Rating](t).FromEntity(&storagemodels.Entity{
			Key: key.New("Rating", "1", nil),
			Properties: storagemodels.PropertyMap{
				"Score": float64(1500),
				"Games": int64(12),
				"Tags":  []any{"blitz", "rapid"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1500, r.Score)
		assert.Equal(t, uint32(12), r.Games)
		assert.Equal(t, []string{"blitz", "rapid"}, r.Tags)
	})

	t.Run("entity without key", func(t *testing.T) {
		_, err := m.FromEntity(&storagemodels.Entity{Kind: "Customer"})
		assert.True(t, storeerrors.IsValidationError(err))
		_, err = m.FromEntity(nil)
		assert.True(t, storeerrors.IsValidationError(err))
	})

	t.Run("kind mismatch", func(t *testing.T) {
		_, err := m.FromEntity(&storagemodels.Entity{Key: key.New("Rating", "1", nil)})
		assert.True(t, storeerrors.IsValidationError(err))
	})

	t.Run("unconvertible property", func(t *testing.T) {
		_, err := m.FromEntity(&storagemodels.Entity{Key: k, Properties: storagemodels.PropertyMap{"Name": 42}})
		require.Error(t, err)
		assert.True(t, storeerrors.IsFieldAccess(err))
	})
}

func TestFromEntityFailures(t *testing.T) {
	type locked struct {
		ID   *key.Key
		Name string
	}

	t.Run("construction error", func(t *testing.T) {
		schema := registry.NewSchema(
			registry.Identifier("ID", func(l *locked) **key.Key { return &l.ID }),
		).WithConstructor(func() (*locked, error) { return nil, errors.New("no zero value") })

		_, err := entitymapper.NewMapper(schema).FromEntity(&storagemodels.Entity{Key: key.New("locked", "1", nil)})
		assert.True(t, storeerrors.IsConstruction(err))
	})

	t.Run("read-only field", func(t *testing.T) {
		schema := registry.NewSchema(
			registry.Identifier("ID", func(l *locked) **key.Key { return &l.ID }),
			registry.ReadOnly("Name", func(l *locked) string { return l.Name }),
		)
		m := entitymapper.NewMapper(schema)

		mapping, err := m.ToEntity(&locked{Name: "fixed"})
		require.NoError(t, err)
		assert.Equal(t, "fixed", mapping.Properties["Name"])

		_, err = m.FromEntity(&storagemodels.Entity{Key: key.New("locked", "1", nil), Properties: mapping.Properties})
		require.Error(t, err)
		assert.True(t, storeerrors.IsFieldAccess(err))
		assert.ErrorIs(t, err, registry.ErrReadOnly)
	})

	t.Run("read-only identifier", func(t *testing.T) {
		schema := registry.NewSchema(
			registry.Custom("ID", registry.RoleIdentifier, func(l *locked) (any, error) { return l.ID, nil }, nil),
		)
		_, err := entitymapper.NewMapper(schema).FromEntity(&storagemodels.Entity{Key: key.New("locked", "1", nil)})
		assert.True(t, storeerrors.IsFieldAccess(err))
	})

	t.Run("identifier holding a non-key", func(t *testing.T) {
		schema := registry.NewSchema(
			registry.Custom("ID", registry.RoleIdentifier, func(l *locked) (any, error) { return "42", nil }, nil),
		)
		_, err := entitymapper.NewMapper(schema).ToEntity(&locked{})
		assert.True(t, storeerrors.IsFieldAccess(err))
	})

	t.Run("strict schema fails at first use", func(t *testing.T) {
		type twin struct {
			A, B *key.Key
		}
		schema := registry.NewSchema(
			registry.Identifier("A", func(w *twin) **key.Key { return &w.A }),
			registry.Identifier("B", func(w *twin) **key.Key { return &w.B }),
		).Strict()
		m := entitymapper.NewMapper(schema)

		_, err := m.ToEntity(&twin{})
		assert.True(t, storeerrors.IsConfiguration(err))
		_, err = m.FromEntity(&storagemodels.Entity{Key: key.New("twin", "1", nil)})
		assert.True(t, storeerrors.IsConfiguration(err))
	})

	t.Run("unregistered type", func(t *testing.T) {
		_, err := entitymapper.MapperFor[locked]()
		assert.True(t, storeerrors.IsConfiguration(err))
	})
}

// roundTrip maps rec to an entity, gives it k when the record had no key, and maps it back.
func roundTrip[T any](t *testing.T, rec *T, k *key.Key) *T {
	t.Helper()
	m := mustMapper[T](t)
	mapping, err := m.ToEntity(rec)
	require.NoError(t, err)

	e := mapping.Entity()
	if e.Key == nil {
		e.Key = k
	}
	out, err := m.FromEntity(e)
	require.NoError(t, err)
	return out
}

func TestRoundTripPerRoleCombination(t *testing.T) {
	system := key.New("RatingSystem", "elo", nil)

	t.Run("no identifier, no parent", func(t *testing.T) {
		in := &note{Text: "hello", Score: 0.5}
		out := roundTrip(t, in, key.New("note", "1", nil))
		assert.Equal(t, in, out)
	})

	t.Run("identifier only", func(t *testing.T) {
		created := strfmt.DateTime(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
		name, desc := "Elo", "classic"
		in := &testmodels.RatingSystem{
			ID:          system,
			CreatedAt:   &created,
			Description: &desc,
			Name:        &name,
			SiteURL:     "https://example.com",
			UpdatedAt:   created,
		}
		out := roundTrip(t, in, nil)
		assert.Equal(t, in, out)
	})

	t.Run("parent only", func(t *testing.T) {
		post := key.New("Post", "9", nil)
		in := &comment{On: post, Body: "nice"}
		out := roundTrip(t, in, key.New("comment", "1", post))
		assert.Equal(t, in.Body, out.Body)
		assert.True(t, out.On.Equal(post))
	})

	t.Run("identifier and parent", func(t *testing.T) {
		in := &testmodels.Rating{
			ID:     key.New("Rating", "r1", system),
			System: system,
			Player: "p1",
			Score:  1500,
			Games:  3,
			Tags:   []string{"blitz"},
		}
		out := roundTrip(t, in, nil)
		assert.Equal(t, in, out)
	})
}

func TestFromEntities(t *testing.T) {
	m := mustMapper[testmodels.Customer](t)

	customers, err := m.FromEntities([]*storagemodels.Entity{
		{Key: key.New("Customer", "1", nil), Properties: storagemodels.PropertyMap{"Name": "Ann"}},
		{Key: key.New("Customer", "2", nil), Properties: storagemodels.PropertyMap{"Name": "Bob"}},
	})
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Bob", customers[1].Name)

	_, err = m.FromEntities([]*storagemodels.Entity{
		{Key: key.New("Customer", "1", nil)},
		{Kind: "Customer"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity 1")
}
