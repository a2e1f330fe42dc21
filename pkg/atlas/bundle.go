// Package atlas loads brainglobe style atlas bundles: a directory holding
// metadata.json, structures.json, the annotation and reference volumes and a
// meshes/ directory with one mesh per structure. annotation.raw, when
// present, is the annotation volume as raw little-endian uint32 labels.
package atlas

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"bgviewer/internal/models"
	"bgviewer/pkg/hierarchy"
	"bgviewer/pkg/regions"
)

// ErrUnknownStructure is returned when a structure acronym is not in the structures table
var ErrUnknownStructure = errors.New("unknown structure")

// Paths are the files of an atlas bundle
type Paths struct {
	Metadata   string
	Structures string
	Annotation string
	Labels     string
	Reference  string
	Meshes     string
}

// PathsFor returns the bundle layout rooted at dir
func PathsFor(dir string) Paths {
	return Paths{
		Metadata:   filepath.Join(dir, "metadata.json"),
		Structures: filepath.Join(dir, "structures.json"),
		Annotation: filepath.Join(dir, "annotation.tiff"),
		Labels:     filepath.Join(dir, "annotation.raw"),
		Reference:  filepath.Join(dir, "reference.tiff"),
		Meshes:     filepath.Join(dir, "meshes"),
	}
}

// Atlas is a loaded atlas bundle. It is read only once loaded and is
// replaced wholesale when another atlas is opened.
type Atlas struct {
	Paths      Paths
	Metadata   models.AtlasMetadata
	Structures []models.StructureRecord
	Index      *regions.Index
	Hierarchy  *hierarchy.Tree

	byAcronym map[string]models.StructureRecord
	log       logrus.FieldLogger
}

// Load reads the atlas bundle in dir. A nil logger discards log output.
func Load(dir string, logger logrus.FieldLogger) (*Atlas, error) {
	if logger == nil {
		logger = discardLogger()
	}

	paths := PathsFor(dir)
	log := logger.WithField("atlas_dir", dir)

	meta, err := readMetadata(paths.Metadata)
	if err != nil {
		return nil, err
	}

	structures, err := readStructures(paths.Structures)
	if err != nil {
		return nil, err
	}

	a, err := New(meta, structures)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build atlas from %s", dir)
	}
	a.Paths = paths
	a.log = log

	log.WithFields(logrus.Fields{
		"atlas":      meta.Name(),
		"structures": len(structures),
		"duplicates": a.Index.Duplicates(),
	}).Info("atlas loaded")

	return a, nil
}

// New builds an atlas from already decoded metadata and structures
func New(meta models.AtlasMetadata, structures []models.StructureRecord) (*Atlas, error) {
	tree, err := hierarchy.NewTree(structures)
	if err != nil {
		return nil, err
	}

	byAcronym := make(map[string]models.StructureRecord, len(structures))
	for _, s := range structures {
		if _, exists := byAcronym[s.Acronym]; exists {
			return nil, errors.Errorf("duplicate structure acronym %q", s.Acronym)
		}
		byAcronym[s.Acronym] = s
	}

	return &Atlas{
		Metadata:   meta,
		Structures: structures,
		Index:      regions.NewIndex(structures),
		Hierarchy:  tree,
		byAcronym:  byAcronym,
		log:        discardLogger(),
	}, nil
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Name returns the atlas name from the metadata
func (a *Atlas) Name() string {
	return a.Metadata.Name()
}

// NameFromAcronym returns the full name of the structure with the given acronym
func (a *Atlas) NameFromAcronym(acronym string) (string, error) {
	s, ok := a.byAcronym[acronym]
	if !ok {
		return "", errors.Wrapf(ErrUnknownStructure, "acronym %q", acronym)
	}
	return s.Name, nil
}

// IDFromAcronym returns the id of the structure with the given acronym
func (a *Atlas) IDFromAcronym(acronym string) (int, error) {
	s, ok := a.byAcronym[acronym]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownStructure, "acronym %q", acronym)
	}
	return s.ID, nil
}

// MeshPath returns the mesh file of a structure
func (a *Atlas) MeshPath(id int) string {
	return filepath.Join(a.Paths.Meshes, fmt.Sprintf("%d.obj", id))
}

// MeshFor returns the mesh file of the structure with the given acronym
func (a *Atlas) MeshFor(acronym string) (string, error) {
	id, err := a.IDFromAcronym(acronym)
	if err != nil {
		return "", err
	}
	return a.MeshPath(id), nil
}

// Shape returns the annotation volume size as width, height and depth.
// The metadata "shape" lists the axes slowest first.
func (a *Atlas) Shape() (int, int, int, error) {
	value, ok := a.Metadata.Get("shape")
	if !ok {
		return 0, 0, 0, errors.New("atlas metadata has no shape")
	}
	axes, ok := value.([]interface{})
	if !ok || len(axes) != 3 {
		return 0, 0, 0, errors.Errorf("atlas shape must list 3 axes, got %v", value)
	}

	var dims [3]int
	for i, axis := range axes {
		n, ok := axis.(json.Number)
		if !ok {
			return 0, 0, 0, errors.Errorf("atlas shape axis %d is not a number: %v", i, axis)
		}
		v, err := n.Int64()
		if err != nil || v <= 0 {
			return 0, 0, 0, errors.Errorf("atlas shape axis %d must be a positive integer, got %s", i, n)
		}
		dims[i] = int(v)
	}
	return dims[2], dims[1], dims[0], nil
}

// Project builds the region tree of the atlas
func (a *Atlas) Project(opts hierarchy.Options) (*hierarchy.DisplayNode, error) {
	root, err := hierarchy.Project(a.Hierarchy, a.NameFromAcronym, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build region tree")
	}

	a.log.WithFields(logrus.Fields{
		"nodes":          root.Len(),
		"structures":     a.Hierarchy.Len(),
		"missing_parent": opts.MissingParent.String(),
	}).Debug("region tree built")

	return root, nil
}

// readMetadata decodes metadata.json keeping the key order of the file
func readMetadata(path string) (models.AtlasMetadata, error) {
	var meta models.AtlasMetadata

	file, err := os.Open(path)
	if err != nil {
		return meta, errors.Wrap(err, "failed to open metadata")
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return meta, errors.Wrapf(err, "failed to parse metadata %s", path)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return meta, errors.Errorf("failed to parse metadata %s: expected an object", path)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return meta, errors.Wrapf(err, "failed to parse metadata %s", path)
		}
		key, _ := tok.(string)

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return meta, errors.Wrapf(err, "failed to parse metadata value %q", key)
		}
		meta.Entries = append(meta.Entries, models.MetadataEntry{Key: key, Value: value})
	}

	return meta, nil
}

// readStructures decodes structures.json
func readStructures(path string) ([]models.StructureRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read structures")
	}

	var structures []models.StructureRecord
	if err := json.Unmarshal(data, &structures); err != nil {
		return nil, errors.Wrapf(err, "failed to parse structures %s", path)
	}

	return structures, nil
}
