package location

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
)

// Resolver labels coordinates with the nearest work location whose radius
// contains them, falling back to the raw "lat, lng" pair.
type Resolver struct {
	sites []location.WorkLocation
}

func NewResolver(sites []location.WorkLocation) *Resolver {
	copied := make([]location.WorkLocation, len(sites))
	copy(copied, sites)
	return &Resolver{sites: copied}
}

// LoadResolver builds a Resolver from the configured work locations.
func LoadResolver(ctx context.Context, repo location.LocationRepository) (*Resolver, error) {
	sites, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}
	return NewResolver(sites), nil
}

func (r *Resolver) Resolve(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return ""
	}

	best := -1
	bestDistance := 0.0
	for i, site := range r.sites {
		d := utils.CalculateHaversineDistance(*lat, *lng, site.Latitude, site.Longitude)
		if d > site.RadiusMeters {
			continue
		}
		if best == -1 || d < bestDistance {
			best, bestDistance = i, d
		}
	}

	if best == -1 {
		return utils.CoordinatesLabel(lat, lng)
	}
	return r.sites[best].Name
}
