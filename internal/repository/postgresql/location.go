package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

// List implements location.LocationRepository.
func (l *locationRepository) List(ctx context.Context) ([]location.WorkLocation, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters
		FROM work_locations
		ORDER BY name, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}
	defer rows.Close()

	var sites []location.WorkLocation
	for rows.Next() {
		var s location.WorkLocation
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.RadiusMeters); err != nil {
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work locations: %w", err)
	}

	return sites, nil
}
