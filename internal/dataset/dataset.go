// Package dataset reads snapshot datasets from their JSON representations.
//
// Two layouts are accepted. The archive layout is an object keyed by snapshot,
// where each value maps participant ids to pings:
//
//	{"1700000000": {"rider-1": {"timestamp": 1700000000, "latitude": 52510670, "longitude": 13399020}}}
//
// Snapshots keep the order in which they appear in the document. Numeric keys
// are taken as the snapshot's Unix time. The list layout is an array whose
// elements are either participant maps or {"stamp": ..., "points": {...}}
// objects.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
)

// ErrInvalidDataset is returned when a document is not a dataset.
var ErrInvalidDataset = errors.New("invalid dataset")

// Parse decodes a dataset document.
func Parse(data []byte) (models.Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDataset)
	}

	root := gjson.ParseBytes(data)
	switch {
	case root.IsObject():
		return parseObject(root)
	case root.IsArray():
		return parseArray(root)
	default:
		return nil, fmt.Errorf("%w: expected object or array, got %s", ErrInvalidDataset, root.Type)
	}
}

// LoadFile reads and parses the dataset stored at path.
func LoadFile(path string) (models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Parse(data)
}

// Read parses a dataset from r.
func Read(r io.Reader) (models.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Parse(data)
}

func parseObject(root gjson.Result) (models.Dataset, error) {
	var (
		dataset models.Dataset
		err     error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		var snapshot models.Snapshot
		snapshot.Points, err = parsePoints(value)
		if err != nil {
			err = fmt.Errorf("snapshot %q: %w", key.String(), err)
			return false
		}
		if stamp, convErr := strconv.ParseInt(key.String(), 10, 64); convErr == nil {
			snapshot.Stamp = stamp
		}
		dataset = append(dataset, snapshot)
		return true
	})
	if err != nil {
		return nil, err
	}
	return dataset, nil
}

func parseArray(root gjson.Result) (models.Dataset, error) {
	var (
		dataset models.Dataset
		err     error
	)
	index := 0
	root.ForEach(func(_, value gjson.Result) bool {
		var snapshot models.Snapshot
		snapshot, err = parseSnapshot(value)
		if err != nil {
			err = fmt.Errorf("snapshot %d: %w", index, err)
			return false
		}
		dataset = append(dataset, snapshot)
		index++
		return true
	})
	if err != nil {
		return nil, err
	}
	return dataset, nil
}

// parseSnapshot accepts both a bare participant map and the wrapped form.
func parseSnapshot(value gjson.Result) (models.Snapshot, error) {
	if isWrapped(value) {
		points, err := parsePoints(value.Get("points"))
		if err != nil {
			return models.Snapshot{}, err
		}
		stamp := value.Get("stamp")
		if stamp.Exists() && stamp.Type != gjson.Number {
			return models.Snapshot{}, fmt.Errorf("%w: stamp must be a number", ErrInvalidDataset)
		}
		return models.Snapshot{Stamp: stamp.Int(), Points: points}, nil
	}

	points, err := parsePoints(value)
	if err != nil {
		return models.Snapshot{}, err
	}
	return models.Snapshot{Points: points}, nil
}

// isWrapped reports whether value is a {"stamp", "points"} object rather than
// a participant map. A participant named "points" maps to a ping, whose
// members are numbers, while a wrapped "points" maps participants to objects.
func isWrapped(value gjson.Result) bool {
	points := value.Get("points")
	if !value.IsObject() || !points.IsObject() {
		return false
	}
	wrapped := true
	value.ForEach(func(key, _ gjson.Result) bool {
		if k := key.String(); k != "points" && k != "stamp" {
			wrapped = false
		}
		return wrapped
	})
	points.ForEach(func(_, member gjson.Result) bool {
		if !member.IsObject() {
			wrapped = false
		}
		return wrapped
	})
	return wrapped
}

func parsePoints(value gjson.Result) (map[string]models.RawPoint, error) {
	if !value.IsObject() {
		return nil, fmt.Errorf("%w: expected participant object, got %s", ErrInvalidDataset, value.Type)
	}

	points := make(map[string]models.RawPoint)
	var err error
	value.ForEach(func(key, ping gjson.Result) bool {
		var p models.RawPoint
		p, err = parsePing(ping)
		if err != nil {
			err = fmt.Errorf("participant %q: %w", key.String(), err)
			return false
		}
		points[key.String()] = p
		return true
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

func parsePing(ping gjson.Result) (models.RawPoint, error) {
	if !ping.IsObject() {
		return models.RawPoint{}, fmt.Errorf("%w: expected ping object", ErrInvalidDataset)
	}
	names := []string{"timestamp", "latitude", "longitude"}
	fields := make([]gjson.Result, len(names))
	for i, name := range names {
		fields[i] = ping.Get(name)
		if fields[i].Type != gjson.Number {
			return models.RawPoint{}, fmt.Errorf("%w: %s must be a number", ErrInvalidDataset, name)
		}
	}
	return models.RawPoint{
		Timestamp: fields[0].Int(),
		Latitude:  fields[1].Int(),
		Longitude: fields[2].Int(),
	}, nil
}
