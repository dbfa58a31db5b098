package location

import "context"

type LocationRepository interface {
	// List returns every configured work location
	List(ctx context.Context) ([]WorkLocation, error)
}
