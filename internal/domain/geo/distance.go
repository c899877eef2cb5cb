package geo

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	// DefaultRoadFactor converts great-circle distance into an estimated road distance.
	DefaultRoadFactor = 1.2
)

// GeoPoint is an immutable coordinate in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" binding:"latitude"`
	Lng float64 `json:"lng" binding:"longitude"`
}

// DistanceKm returns the great-circle distance between a and b in kilometers.
func DistanceKm(a, b GeoPoint) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// RouteDistanceKm sums the distances between consecutive points in the order given.
func RouteDistanceKm(points []GeoPoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += DistanceKm(points[i-1], points[i])
	}
	return total
}

// RoadDistanceKm inflates a straight-line distance by factor. A non-positive factor uses DefaultRoadFactor.
func RoadDistanceKm(straightKm, factor float64) float64 {
	if factor <= 0 {
		factor = DefaultRoadFactor
	}
	return straightKm * factor
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
