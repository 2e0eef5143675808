package bins

import (
	"math"
	"sort"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(lat1 float64, lng1 float64, lat2 float64, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// filterNearby keeps bins with coordinates inside radiusKm and orders them by distance.
func filterNearby(all []*Bin, lat float64, lng float64, radiusKm float64) []*NearbyBin {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	res := make([]*NearbyBin, 0)
	for _, b := range all {
		if !b.Latitude.Valid || !b.Longitude.Valid {
			continue
		}

		d := HaversineKm(lat, lng, b.Latitude.Float64, b.Longitude.Float64)
		if d <= radiusKm {
			res = append(res, &NearbyBin{Bin: *b, DistanceKm: d})
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].DistanceKm < res[j].DistanceKm
	})

	return res
}

// boundingBox returns a lat/lng box that contains the circle of radiusKm around the origin.
func boundingBox(lat float64, lng float64, radiusKm float64) (float64, float64, float64, float64) {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi

	cosLat := math.Cos(radians(lat))
	dLng := 180.0
	if cosLat > 1e-6 {
		dLng = math.Min(180, dLat/cosLat)
	}

	return lat - dLat, lat + dLat, lng - dLng, lng + dLng
}
