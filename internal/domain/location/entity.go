package location

// WorkLocation is a named site an entry punch can be attributed to when its
// coordinates fall inside RadiusMeters.
type WorkLocation struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}
