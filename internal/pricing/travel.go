package pricing

import "math"

// TravelPolicy configures the travel fee charged for the distance between
// the cleaner's base and the booking address.
type TravelPolicy struct {
	FreeRadiusKm float64 // no fee within this distance
	PerKm        int64   // bani per started km beyond the free radius
	MaxFee       int64   // cap, 0 means uncapped
}

// DefaultTravelPolicy returns the default travel policy.
func DefaultTravelPolicy() TravelPolicy {
	return TravelPolicy{
		FreeRadiusKm: 5,
		PerKm:        200,
		MaxFee:       5000,
	}
}

// TravelFee returns the fee for distanceKm under policy.
func TravelFee(distanceKm float64, policy TravelPolicy) int64 {
	if distanceKm <= policy.FreeRadiusKm || policy.PerKm <= 0 {
		return 0
	}
	km := int64(math.Ceil(distanceKm - policy.FreeRadiusKm))
	fee := km * policy.PerKm
	if policy.MaxFee > 0 && fee > policy.MaxFee {
		return policy.MaxFee
	}
	return fee
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
