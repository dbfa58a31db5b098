package location

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	sites []location.WorkLocation
	err   error
}

func (s stubRepo) List(ctx context.Context) ([]location.WorkLocation, error) {
	return s.sites, s.err
}

var sites = []location.WorkLocation{
	{ID: "1", Name: "Matriz", Latitude: -2.1700, Longitude: -79.9200, RadiusMeters: 200},
	{ID: "2", Name: "Bodega", Latitude: -2.1710, Longitude: -79.9200, RadiusMeters: 200},
	{ID: "3", Name: "Quito", Latitude: -0.1807, Longitude: -78.4678, RadiusMeters: 500},
}

func TestResolver_NearestWithinRadius(t *testing.T) {
	r := NewResolver(sites)

	// ~22 m from Bodega, ~89 m from Matriz
	lat, lng := -2.1708, -79.9200
	assert.Equal(t, "Bodega", r.Resolve(&lat, &lng))

	lat, lng = -0.1810, -78.4680
	assert.Equal(t, "Quito", r.Resolve(&lat, &lng))
}

func TestResolver_FallsBackToCoordinates(t *testing.T) {
	r := NewResolver(sites)

	lat, lng := -1.05, -80.45
	assert.Equal(t, "-1.05, -80.45", r.Resolve(&lat, &lng))
	assert.Equal(t, "", r.Resolve(nil, nil))
}

func TestResolver_NoSites(t *testing.T) {
	lat, lng := -2.17, -79.92
	assert.Equal(t, "-2.17, -79.92", NewResolver(nil).Resolve(&lat, &lng))
}

func TestLoadResolver(t *testing.T) {
	r, err := LoadResolver(context.Background(), stubRepo{sites: sites})
	require.NoError(t, err)
	lat, lng := -2.1700, -79.9200
	assert.Equal(t, "Matriz", r.Resolve(&lat, &lng))

	_, err = LoadResolver(context.Background(), stubRepo{err: errors.New("boom")})
	assert.Error(t, err)
}
