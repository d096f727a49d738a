package spatial

import (
	"math"
)

// Point represents a 2D point with latitude and longitude in degrees
type Point struct {
	Lat float64
	Lon float64
}

// Centroid calculates the mean position of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// RadiusOfGyration calculates the radius of gyration for a set of points
// in meters. This measures the spatial dispersion around the centroid
func RadiusOfGyration(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}

	center := Centroid(points)

	var sumSquaredDist float64
	for _, p := range points {
		dist := HaversineDistance(center.Lat, center.Lon, p.Lat, p.Lon)
		sumSquaredDist += dist * dist
	}

	return math.Sqrt(sumSquaredDist / float64(len(points)))
}

// PathLength calculates the total length of a path in meters
func PathLength(points []Point) float64 {
	var totalDist float64
	for i := 1; i < len(points); i++ {
		totalDist += HaversineDistance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}
	return totalDist
}

// Tortuosity calculates the tortuosity of a path
// Tortuosity = actual path length / straight-line distance
// Value of 1 means straight line, >1 means curved/winding path
func Tortuosity(points []Point) float64 {
	if len(points) < 2 {
		return 1.0
	}

	first, last := points[0], points[len(points)-1]
	straightDist := HaversineDistance(first.Lat, first.Lon, last.Lat, last.Lon)
	if straightDist == 0 {
		return 1.0
	}

	return PathLength(points) / straightDist
}
