package regions

import (
	"bgviewer/internal/models"
)

// Index is a lookup table from atlas value to structure record, built once
// per loaded atlas. It answers the same questions as the package level
// functions without scanning the table on every call.
type Index struct {
	records map[int]models.StructureRecord
	size    int
}

// NewIndex builds an index over table. When ids repeat, the first record wins,
// matching the linear scan.
func NewIndex(table []models.StructureRecord) *Index {
	idx := &Index{
		records: make(map[int]models.StructureRecord, len(table)),
		size:    len(table),
	}
	for _, record := range table {
		if _, exists := idx.records[record.ID]; exists {
			continue
		}
		idx.records[record.ID] = record
	}
	return idx
}

// Len returns the number of distinct ids in the index
func (idx *Index) Len() int {
	return len(idx.records)
}

// Duplicates returns how many table rows were shadowed by an earlier row with the same id
func (idx *Index) Duplicates() int {
	return idx.size - len(idx.records)
}

// Record returns the structure record for value
func (idx *Index) Record(value int) (models.StructureRecord, error) {
	record, ok := idx.records[value]
	if !ok {
		return models.StructureRecord{}, &UnknownAtlasValueError{Value: value}
	}
	return record, nil
}

// Name is the indexed equivalent of ResolveName
func (idx *Index) Name(value int) (string, error) {
	record, err := idx.Record(value)
	if err != nil {
		return "", err
	}
	return record.Name, nil
}

// StructurePath is the indexed equivalent of ResolveStructurePath
func (idx *Index) StructurePath(value int) ([]int, error) {
	record, err := idx.Record(value)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), record.StructureIDPath...), nil
}

// Describe is the indexed equivalent of DescribeForDisplay
func (idx *Index) Describe(value *int) string {
	return describe(value, idx.Name)
}
