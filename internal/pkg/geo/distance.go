package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for distance ranking.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points given in
// degrees, using the spherical law of cosines. The acos argument is clamped
// so that identical points yield 0 instead of NaN.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLambda := radians(lon2) - radians(lon1)

	c := math.Cos(phi1)*math.Cos(phi2)*math.Cos(dLambda) + math.Sin(phi1)*math.Sin(phi2)
	c = math.Max(-1, math.Min(1, c))
	return EarthRadiusKm * math.Acos(c)
}

// ValidCoordinate checks latitude and longitude ranges.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
