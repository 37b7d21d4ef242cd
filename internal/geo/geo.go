// Package geo supplies the geographic proximity signal: country-name
// standardization plus a great-circle distance score between resolved
// country centroids.
package geo

import "math"

const earthRadiusKm = 6371.0

// Coord is a country centroid in decimal degrees
type Coord struct {
	Lat float64
	Lon float64
}

// Provider scores geographic proximity between bands by country.
// Countries that fail to resolve simply produce no entry; downstream
// treats absence as a zero-valued signal.
type Provider struct {
	coords map[string]Coord
}

// NewProvider creates a Provider over standardized-name -> centroid data
func NewProvider(coords map[string]Coord) *Provider {
	if coords == nil {
		coords = make(map[string]Coord)
	}
	return &Provider{coords: coords}
}

// Resolve returns the centroid for a raw country string
func (p *Provider) Resolve(country string) (Coord, bool) {
	name := StandardizeCountryName(country)
	if name == "" {
		return Coord{}, false
	}
	c, ok := p.coords[name]
	return c, ok
}

// Score returns a proximity score per candidate against the target
// country. Scores are in (0, 1], 1 for the same centroid, decaying with
// great-circle distance. Candidates whose country cannot be resolved are
// omitted from the result, as is the whole result when the target's
// country is unresolvable.
func (p *Provider) Score(targetCountry string, candidates map[int64]string) map[int64]float64 {
	scores := make(map[int64]float64, len(candidates))

	origin, ok := p.Resolve(targetCountry)
	if !ok {
		return scores
	}

	for id, country := range candidates {
		dest, ok := p.Resolve(country)
		if !ok {
			continue
		}
		km := haversineKm(origin, dest)
		scores[id] = 1.0 / (1.0 + km/1000.0)
	}

	return scores
}

// haversineKm computes the great-circle distance between two coordinates
func haversineKm(a, b Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
