package reconstruct

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
)

// coordinateDecimals is the number of implied decimal places of an encoded
// coordinate.
const coordinateDecimals = 6

// DecodeCoordinate converts a fixed-point coordinate into degrees by placing
// the decimal point six digits from the right. Encodings with fewer than
// seven digits are rejected.
func DecodeCoordinate(encoded int64) (float64, error) {
	s := strconv.FormatInt(encoded, 10)
	if len(strings.TrimPrefix(s, "-")) <= coordinateDecimals {
		return 0, fmt.Errorf("%w: %d has fewer than %d digits", ErrMalformedCoordinate, encoded, coordinateDecimals+1)
	}

	split := len(s) - coordinateDecimals
	v, err := strconv.ParseFloat(s[:split]+"."+s[split:], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedCoordinate, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %d is not finite", ErrMalformedCoordinate, encoded)
	}
	return v, nil
}

// DecodePoint converts a raw ping into a point without a vector.
func DecodePoint(raw models.RawPoint) (models.Point, error) {
	lat, err := DecodeCoordinate(raw.Latitude)
	if err != nil {
		return models.Point{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := DecodeCoordinate(raw.Longitude)
	if err != nil {
		return models.Point{}, fmt.Errorf("longitude: %w", err)
	}

	return models.Point{
		Stamp: time.UnixMilli(raw.Timestamp * 1000).UTC(),
		Lat:   lat,
		Lng:   lng,
	}, nil
}
