// Package geo holds the great-circle math used for discovery distances.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used by HaversineMiles
const EarthRadiusMiles = 3959.0

// HaversineMiles returns the great-circle distance in miles between two points.
// A nil coordinate yields (nil, nil); NaN or infinite input is an error.
func HaversineMiles(lat1, lng1, lat2, lng2 *float64) (*float64, error) {
	if lat1 == nil || lng1 == nil || lat2 == nil || lng2 == nil {
		return nil, nil
	}
	for _, v := range []float64{*lat1, *lng1, *lat2, *lng2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid coordinate value: %v", v)
		}
	}

	d := Distance(*lat1, *lng1, *lat2, *lng2)
	return &d, nil
}

// Distance is the haversine formula on plain values
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// ValidCoordinates reports whether lat is within [-90,90] and lng within [-180,180]
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
