package sqlxrepos

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/acuhub/portal/core/campus"
)

type CampusRepository struct {
	db *sqlx.DB
}

var _ campus.Repository = (*CampusRepository)(nil)

func NewCampusRepository(db *sqlx.DB) *CampusRepository {
	return &CampusRepository{db: db}
}

type campusLocationRow struct {
	ID           int                `db:"id"`
	Name         string             `db:"name"`
	Type         string             `db:"type"`
	Lat          float64            `db:"lat"`
	Lng          float64            `db:"lng"`
	Description  string             `db:"description"`
	Facilities   pq.StringArray     `db:"facilities"`
	Services     pq.StringArray     `db:"services"`
	OpeningHours types.NullJSONText `db:"opening_hours"`
	Contact      string             `db:"contact"`
}

func (row campusLocationRow) location() (campus.Location, error) {
	loc := campus.Location{
		ID:          row.ID,
		Name:        row.Name,
		Type:        row.Type,
		Coordinates: campus.Coordinates{Lat: row.Lat, Lng: row.Lng},
		Description: row.Description,
		Facilities:  row.Facilities,
		Services:    row.Services,
		Contact:     row.Contact,
	}
	if row.OpeningHours.Valid {
		if err := json.Unmarshal(row.OpeningHours.JSONText, &loc.OpeningHours); err != nil {
			return campus.Location{}, errors.Wrap(err, "decoding opening hours")
		}
	}
	return loc, nil
}

func (repo *CampusRepository) QueryLocations(ctx context.Context, filter *campus.QueryFilter) ([]campus.Location, error) {
	query := `SELECT * FROM campus_location`
	var args []interface{}
	if filter != nil && filter.Type != "" {
		query += ` WHERE type = $1`
		args = append(args, filter.Type)
	}
	query += ` ORDER BY id`

	var rows []campusLocationRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying campus locations")
	}
	locations := make([]campus.Location, 0, len(rows))
	for _, row := range rows {
		loc, err := row.location()
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
