// Package regions maps atlas label values to brain structure names and
// structure id paths using an atlas structures table.
package regions

import (
	"errors"
	"fmt"

	"bgviewer/internal/models"
)

// Texts shown to the user when hovering over the annotation volume
const (
	NoLabelText       = "No label here!"
	UnknownRegionText = "Unknown region"
)

// NoLabel is the atlas value of background voxels
const NoLabel = 0

// UnknownAtlasValueError is returned when a label value has no record in the structures table
type UnknownAtlasValueError struct {
	Value int
}

func (e *UnknownAtlasValueError) Error() string {
	return fmt.Sprintf("unknown atlas value: %d", e.Value)
}

// IsUnknownAtlasValue reports whether err is, or wraps, an UnknownAtlasValueError
func IsUnknownAtlasValue(err error) bool {
	var target *UnknownAtlasValueError
	return errors.As(err, &target)
}

// lookup scans the table and returns the first record whose id matches value
func lookup(value int, table []models.StructureRecord) (models.StructureRecord, error) {
	for _, record := range table {
		if record.ID == value {
			return record, nil
		}
	}
	return models.StructureRecord{}, &UnknownAtlasValueError{Value: value}
}

// ResolveName returns the name of the structure with the given atlas value
func ResolveName(value int, table []models.StructureRecord) (string, error) {
	record, err := lookup(value, table)
	if err != nil {
		return "", err
	}
	return record.Name, nil
}

// ResolveStructurePath returns the structure id path of the structure with the given atlas value.
// The returned slice is a copy and may be modified by the caller.
func ResolveStructurePath(value int, table []models.StructureRecord) ([]int, error) {
	record, err := lookup(value, table)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), record.StructureIDPath...), nil
}

// DescribeForDisplay returns the text shown for a hovered voxel. A nil value
// (nothing under the cursor) and the background value both read as "no label".
// It never fails: values missing from the table read as an unknown region.
func DescribeForDisplay(value *int, table []models.StructureRecord) string {
	return describe(value, func(v int) (string, error) {
		return ResolveName(v, table)
	})
}

func describe(value *int, resolve func(int) (string, error)) string {
	if value == nil || *value == NoLabel {
		return NoLabelText
	}

	name, err := resolve(*value)
	if err != nil {
		return UnknownRegionText
	}
	return name
}
