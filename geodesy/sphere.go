// Package geodesy maps between longitude/latitude and planar offsets on a
// spherical earth, anchored at a reference point. It is meant for
// regional domains a few tens of kilometres across; near the poles
// cos(latitude) goes to zero and the mapping is not defined.
package geodesy

import "math"

// EarthRadius is the sphere radius in metres.
const EarthRadius = 6371000.0

func rad(d float64) float64 { return d * math.Pi / 180.0 }
func deg(r float64) float64 { return r * 180.0 / math.Pi }

// SphereDistance returns the great-circle distance in metres between two
// longitude/latitude points (haversine).
func SphereDistance(lon1, lat1, lon2, lat2 float64) float64 {
	phi1, phi2 := rad(lat1), rad(lat2)
	dlat := phi2 - phi1
	dlong := rad(lon2) - rad(lon1)

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dlong/2), 2)
	c := 2 * math.Asin(math.Sqrt(math.Abs(a)))
	return EarthRadius * c
}

// longSpan is the longitude displacement in radians for an east-west
// distance dx at latitude lat (radians). Along a parallel the haversine
// gives d = 2R·asin(cos(lat)·sin(dlong/2)), solved here for dlong.
func longSpan(dx, lat float64) float64 {
	return 2 * math.Asin(math.Sin(dx/(2*EarthRadius))/math.Cos(lat))
}

// latSpan is the latitude displacement in radians for a north-south
// distance dy.
func latSpan(dy float64) float64 {
	return dy / EarthRadius
}
