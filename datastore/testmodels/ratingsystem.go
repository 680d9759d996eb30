package testmodels

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/registry"
)

// RatingSystem is a root record with pointer and date-time fields.
type RatingSystem struct {

	// Key of the rating system.
	ID *key.Key

	// Timestamp when the rating system was created.
	// Format: date-time
	CreatedAt *strfmt.DateTime

	// A description of the rating system.
	Description *string

	// Name of the rating system.
	Name *string

	// site Url
	SiteURL string

	// Timestamp when the rating system was last updated.
	// Format: date-time
	UpdatedAt strfmt.DateTime
}

// Rating is a child of a RatingSystem.
type Rating struct {
	ID     *key.Key
	System *key.Key

	Player string
	Score  int
	Games  uint32
	Tags   []string

	// not persisted
	Rank int
}

func init() {
	registry.RegisterSchema(registry.NewSchema(
		registry.Identifier("ID", func(r *RatingSystem) **key.Key { return &r.ID }),
		registry.Property("CreatedAt", func(r *RatingSystem) **strfmt.DateTime { return &r.CreatedAt }),
		registry.Property("Description", func(r *RatingSystem) **string { return &r.Description }),
		registry.Property("Name", func(r *RatingSystem) **string { return &r.Name }),
		registry.Property("SiteUrl", func(r *RatingSystem) *string { return &r.SiteURL }),
		registry.Property("UpdatedAt", func(r *RatingSystem) *strfmt.DateTime { return &r.UpdatedAt }),
	).Strict())

	registry.RegisterSchema(registry.NewSchema(
		registry.Identifier("ID", func(r *Rating) **key.Key { return &r.ID }),
		registry.ParentReference("System", func(r *Rating) **key.Key { return &r.System }),
		registry.Property("Player", func(r *Rating) *string { return &r.Player }),
		registry.Property("Score", func(r *Rating) *int { return &r.Score }),
		registry.Property("Games", func(r *Rating) *uint32 { return &r.Games }),
		registry.Property("Tags", func(r *Rating) *[]string { return &r.Tags }),
		registry.Excluded[Rating]("Rank"),
	).Strict())
}
