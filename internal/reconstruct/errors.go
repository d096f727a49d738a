package reconstruct

import (
	"errors"
	"fmt"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
)

// Rejection reasons for a pair of consecutive points.
var (
	ErrDuplicateTimestamp = errors.New("duplicate timestamp")
	ErrDuplicatePosition  = errors.New("duplicate position")
	ErrOutOfOrder         = errors.New("out-of-order timestamp")
	ErrInvalidBearing     = errors.New("invalid bearing")
	ErrInvalidDistance    = errors.New("invalid distance")
	ErrInvalidDuration    = errors.New("invalid duration")
)

// ErrMalformedCoordinate is returned when an encoded coordinate cannot be decoded.
var ErrMalformedCoordinate = errors.New("malformed coordinate")

// Errors returned by Run for inputs that violate its preconditions.
var (
	ErrUnorderedDataset = errors.New("snapshots are not in chronological order")
	ErrInvalidOptions   = errors.New("invalid options")
)

// RejectError describes why no vector could be derived between two points.
type RejectError struct {
	Reason error
	Latest models.Point
	Next   models.Point
	Value  float64 // Offending bearing, distance or duration where applicable
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%v (%g) from (%f, %f @ %s) to (%f, %f @ %s)",
		e.Reason, e.Value,
		e.Latest.Lat, e.Latest.Lng, e.Latest.Stamp.Format("2006-01-02 15:04:05"),
		e.Next.Lat, e.Next.Lng, e.Next.Stamp.Format("2006-01-02 15:04:05"))
}

func (e *RejectError) Unwrap() error {
	return e.Reason
}

func reject(reason error, latest, next models.Point, value float64) error {
	return &RejectError{Reason: reason, Latest: latest, Next: next, Value: value}
}

// IsDuplicate reports whether err rejected a repeated ping.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateTimestamp) || errors.Is(err, ErrDuplicatePosition)
}
