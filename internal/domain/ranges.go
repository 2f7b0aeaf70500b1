package domain

const (
	MinAge        = 18
	MaxAge        = 99
	MinDistanceKm = 1
	MaxDistanceKm = 500
	MinHeightCm   = 120
	MaxHeightCm   = 220

	MinPhotos    = 2
	MaxPhotos    = 6
	MaxInterests = 10
)

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampAge(v int) int      { return Clamp(v, MinAge, MaxAge) }
func ClampDistance(v int) int { return Clamp(v, MinDistanceKm, MaxDistanceKm) }
func ClampHeight(v int) int   { return Clamp(v, MinHeightCm, MaxHeightCm) }

// NormalizeAgeRange clamps both ends and swaps them when inverted.
func NormalizeAgeRange(minAge, maxAge int) (int, int) {
	minAge, maxAge = ClampAge(minAge), ClampAge(maxAge)
	if minAge > maxAge {
		minAge, maxAge = maxAge, minAge
	}
	return minAge, maxAge
}
