package domain

import "math"

const earthRadiusKm = 6371

// DistanceKm is the great-circle distance between two coordinates.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)
	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// ProfileDistance returns the distance between two profiles, or nil when
// either location is unknown.
func ProfileDistance(a, b *Profile) *float64 {
	if a == nil || b == nil || a.LocationLat == nil || a.LocationLon == nil || b.LocationLat == nil || b.LocationLon == nil {
		return nil
	}
	d := math.Round(DistanceKm(*a.LocationLat, *a.LocationLon, *b.LocationLat, *b.LocationLon)*10) / 10
	return &d
}
