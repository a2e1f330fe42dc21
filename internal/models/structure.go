package models

// StructureRecord is one row of an atlas structures table
type StructureRecord struct {
	// ID is the atlas value used in the annotation volume for this structure
	ID int `json:"id"`

	// Acronym is the short structure name, used as the hierarchy tag
	Acronym string `json:"acronym"`

	// Name is the full human readable structure name
	Name string `json:"name"`

	// StructureIDPath lists structure ids from the hierarchy root down to this structure
	StructureIDPath []int `json:"structure_id_path"`

	// RGBTriplet is the display colour of the structure
	RGBTriplet [3]uint8 `json:"rgb_triplet"`
}

// ParentID returns the id of the enclosing structure, taken from the
// penultimate element of the structure id path.
func (r StructureRecord) ParentID() (int, bool) {
	if len(r.StructureIDPath) < 2 {
		return 0, false
	}
	return r.StructureIDPath[len(r.StructureIDPath)-2], true
}

// HierarchyNode is a node of the structure hierarchy
type HierarchyNode struct {
	// Identifier is the node key (the structure id)
	Identifier int

	// Tag is the structure acronym
	Tag string

	// ParentIdentifier is nil for the hierarchy root
	ParentIdentifier *int
}

// MetadataEntry is a single key/value pair of an atlas metadata file
type MetadataEntry struct {
	Key   string
	Value interface{}
}

// AtlasMetadata holds the atlas metadata in the order it appears on disk
type AtlasMetadata struct {
	Entries []MetadataEntry
}

// Get returns the value stored under key
func (m AtlasMetadata) Get(key string) (interface{}, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Name returns the atlas name, or an empty string when the metadata has none
func (m AtlasMetadata) Name() string {
	v, ok := m.Get("name")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
