package geo

import "math"

// EarthRadiusMeters is the mean spherical-Earth radius used everywhere a
// distance is computed; the dedup SQL predicate uses the same constant.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two WGS84
// points using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lng2 - lng1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
