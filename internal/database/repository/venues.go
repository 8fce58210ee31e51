package repository

import (
	"database/sql"

	"github.com/coursekit/coursekit/internal/database/models"
)

var venueDescriptor = Descriptor[models.Venue]{
	Table:   "venues",
	Key:     "venue_id",
	Columns: []string{"name", "location", "capacity", "created_at"},
	Fields: func(v *models.Venue) []any {
		return []any{&v.VenueID, &v.Name, &v.Location, &v.Capacity, &v.CreatedAt}
	},
	Values: func(v *models.Venue) []any {
		return []any{v.Name, v.Location, v.Capacity, v.CreatedAt}
	},
}

// VenueRepository handles venue persistence. It adds no queries beyond the
// generic set; entity-specific methods belong here when they appear.
type VenueRepository struct {
	*Repository[models.Venue]
}

// NewVenueRepository creates a new VenueRepository bound to the querier.
func NewVenueRepository(db Querier) *VenueRepository {
	return &VenueRepository{Repository: New(db, venueDescriptor)}
}

// WithTx returns a new VenueRepository using the given transaction.
func (r *VenueRepository) WithTx(tx *sql.Tx) *VenueRepository {
	return &VenueRepository{Repository: r.WithQuerier(tx)}
}
