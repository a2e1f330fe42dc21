// Package visualization holds the viewer side models: the 2D label viewer
// answering hover queries and the 3D scene deciding which meshes are shown.
package visualization

import (
	"fmt"

	"bgviewer/pkg/hierarchy"
)

// rootTags select the whole brain mesh instead of a region mesh
var rootTags = map[string]bool{"root": true, "grey": true}

// MeshLocator resolves a structure tag to its mesh file
type MeshLocator func(tag string) (string, error)

// Actor is a mesh shown in the 3D scene
type Actor struct {
	Tag  string
	Mesh string
}

// Scene tracks which meshes the 3D viewer shows. Changes come one at a time
// from clicks on the region tree.
type Scene struct {
	locate MeshLocator

	root    *Actor
	regions []Actor
}

// NewScene creates an empty scene
func NewScene(locate MeshLocator) *Scene {
	return &Scene{locate: locate}
}

// ShowHide handles a click on a region tree entry. The root and grey entries
// add the whole brain mesh once; any other entry toggles its region mesh and
// the entry's active and checked state. It reports whether the entry's mesh
// is shown afterwards.
func (s *Scene) ShowHide(node *hierarchy.DisplayNode) (bool, error) {
	if rootTags[node.Tag] {
		if s.root == nil {
			if err := s.AddRoot(); err != nil {
				return false, err
			}
		}
		return true, nil
	}

	if i := s.regionIndex(node.Tag); i >= 0 {
		s.regions = append(s.regions[:i], s.regions[i+1:]...)
	} else {
		mesh, err := s.locate(node.Tag)
		if err != nil {
			return false, fmt.Errorf("failed to locate mesh for %q: %w", node.Tag, err)
		}
		s.regions = append(s.regions, Actor{Tag: node.Tag, Mesh: mesh})
	}

	node.ToggleActive()
	node.SetChecked(node.Active)
	return node.Active, nil
}

// AddRoot adds the whole brain mesh
func (s *Scene) AddRoot() error {
	mesh, err := s.locate("root")
	if err != nil {
		return fmt.Errorf("failed to locate root mesh: %w", err)
	}
	s.root = &Actor{Tag: "root", Mesh: mesh}
	return nil
}

// HasRoot reports whether the whole brain mesh is shown
func (s *Scene) HasRoot() bool {
	return s.root != nil
}

// IsShown reports whether the region mesh for tag is shown
func (s *Scene) IsShown(tag string) bool {
	return s.regionIndex(tag) >= 0
}

// Actors returns the shown meshes, root first, then regions in the order they were added
func (s *Scene) Actors() []Actor {
	actors := make([]Actor, 0, len(s.regions)+1)
	if s.root != nil {
		actors = append(actors, *s.root)
	}
	return append(actors, s.regions...)
}

func (s *Scene) regionIndex(tag string) int {
	for i, a := range s.regions {
		if a.Tag == tag {
			return i
		}
	}
	return -1
}
