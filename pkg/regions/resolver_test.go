package regions

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"bgviewer/internal/models"
)

// testTable returns a small structures table
func testTable() []models.StructureRecord {
	return []models.StructureRecord{
		{ID: 315, Acronym: "Isocortex", Name: "Isocortex", StructureIDPath: []int{997, 8, 567, 315}},
		{ID: 997, Acronym: "root", Name: "root", StructureIDPath: []int{997}},
		{ID: 8, Acronym: "grey", Name: "Basic cell groups and regions", StructureIDPath: []int{997, 8}},
	}
}

func intPtr(v int) *int {
	return &v
}

// TestResolveName verifies that known values resolve to their names and unknown values fail
func TestResolveName(t *testing.T) {
	table := testTable()

	for _, record := range table {
		name, err := ResolveName(record.ID, table)
		if err != nil {
			t.Fatalf("Failed to resolve %d: %v", record.ID, err)
		}
		if name != record.Name {
			t.Errorf("Expected name %q for %d, got %q", record.Name, record.ID, name)
		}
	}

	name, err := ResolveName(315, table)
	if err != nil || name != "Isocortex" {
		t.Errorf("Expected Isocortex, got %q (err %v)", name, err)
	}

	_, err = ResolveName(42, table)
	var unknown *UnknownAtlasValueError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownAtlasValueError, got %v", err)
	}
	if unknown.Value != 42 {
		t.Errorf("Expected error value 42, got %d", unknown.Value)
	}
}

// TestResolveStructurePath verifies path lookup and that callers get a copy
func TestResolveStructurePath(t *testing.T) {
	table := testTable()

	path, err := ResolveStructurePath(997, table)
	if err != nil {
		t.Fatalf("Failed to resolve path: %v", err)
	}
	if !reflect.DeepEqual(path, []int{997}) {
		t.Errorf("Expected [997], got %v", path)
	}

	path, err = ResolveStructurePath(315, table)
	if err != nil {
		t.Fatalf("Failed to resolve path: %v", err)
	}
	path[0] = -1
	if table[0].StructureIDPath[0] != 997 {
		t.Error("Modifying the returned path changed the table")
	}

	if _, err := ResolveStructurePath(42, table); !IsUnknownAtlasValue(err) {
		t.Errorf("Expected unknown atlas value error, got %v", err)
	}
}

// TestDuplicateIDsResolveToFirstMatch verifies first-match semantics
func TestDuplicateIDsResolveToFirstMatch(t *testing.T) {
	table := []models.StructureRecord{
		{ID: 5, Name: "first"},
		{ID: 5, Name: "second"},
	}

	name, err := ResolveName(5, table)
	if err != nil || name != "first" {
		t.Errorf("Expected first, got %q (err %v)", name, err)
	}

	idx := NewIndex(table)
	name, err = idx.Name(5)
	if err != nil || name != "first" {
		t.Errorf("Expected indexed lookup to return first, got %q (err %v)", name, err)
	}
	if idx.Duplicates() != 1 {
		t.Errorf("Expected 1 duplicate, got %d", idx.Duplicates())
	}
}

// TestDescribeForDisplay verifies the hover texts
func TestDescribeForDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value *int
		table []models.StructureRecord
		want  string
	}{
		{"nil value", nil, testTable(), NoLabelText},
		{"background", intPtr(0), testTable(), NoLabelText},
		{"background empty table", intPtr(0), nil, NoLabelText},
		{"nil empty table", nil, nil, NoLabelText},
		{"known", intPtr(315), testTable(), "Isocortex"},
		{"unknown", intPtr(42), testTable(), UnknownRegionText},
		{"negative unknown", intPtr(-3), testTable(), UnknownRegionText},
		{"unknown empty table", intPtr(997), nil, UnknownRegionText},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DescribeForDisplay(tc.value, tc.table)
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}

	if NoLabelText != "No label here!" || UnknownRegionText != "Unknown region" {
		t.Error("Hover texts changed")
	}
}

// TestIndexMatchesLinearScan verifies the index and the table scan agree on every value
func TestIndexMatchesLinearScan(t *testing.T) {
	table := testTable()
	idx := NewIndex(table)

	if idx.Len() != len(table) {
		t.Errorf("Expected %d indexed records, got %d", len(table), idx.Len())
	}

	for v := -2; v <= 1000; v++ {
		wantName, wantErr := ResolveName(v, table)
		gotName, gotErr := idx.Name(v)
		if wantName != gotName || (wantErr == nil) != (gotErr == nil) {
			t.Fatalf("Name mismatch for %d: scan (%q, %v), index (%q, %v)", v, wantName, wantErr, gotName, gotErr)
		}
		if gotErr != nil && gotErr.Error() != wantErr.Error() {
			t.Errorf("Error mismatch for %d: %v vs %v", v, wantErr, gotErr)
		}

		wantPath, _ := ResolveStructurePath(v, table)
		gotPath, _ := idx.StructurePath(v)
		if !reflect.DeepEqual(wantPath, gotPath) {
			t.Fatalf("Path mismatch for %d: %v vs %v", v, wantPath, gotPath)
		}

		value := v
		if DescribeForDisplay(&value, table) != idx.Describe(&value) {
			t.Fatalf("Describe mismatch for %d", v)
		}
	}

	if idx.Describe(nil) != NoLabelText {
		t.Errorf("Expected %q for nil value", NoLabelText)
	}
}

// TestIsUnknownAtlasValue verifies wrapped errors are recognised
func TestIsUnknownAtlasValue(t *testing.T) {
	err := fmt.Errorf("hover: %w", &UnknownAtlasValueError{Value: 7})
	if !IsUnknownAtlasValue(err) {
		t.Error("Expected wrapped error to be recognised")
	}
	if IsUnknownAtlasValue(errors.New("other")) {
		t.Error("Expected unrelated error not to be recognised")
	}
	if got := (&UnknownAtlasValueError{Value: 7}).Error(); got != "unknown atlas value: 7" {
		t.Errorf("Unexpected error text %q", got)
	}
}
