package visualization

import (
	"errors"
	"reflect"
	"testing"

	"bgviewer/pkg/hierarchy"
)

func testLocator(tag string) (string, error) {
	if tag == "missing" {
		return "", errors.New("no mesh")
	}
	return "meshes/" + tag + ".obj", nil
}

// TestShowHideRegion verifies a region mesh is added and removed
func TestShowHideRegion(t *testing.T) {
	scene := NewScene(testLocator)
	node := &hierarchy.DisplayNode{Label: "Isocortex", Tag: "Isocortex", Depth: 3}

	shown, err := scene.ShowHide(node)
	if err != nil {
		t.Fatalf("ShowHide failed: %v", err)
	}
	if !shown || !scene.IsShown("Isocortex") || !node.Active || !node.Checked {
		t.Errorf("Expected Isocortex shown and active, got shown=%v node=%+v", shown, node)
	}

	shown, err = scene.ShowHide(node)
	if err != nil {
		t.Fatalf("ShowHide failed: %v", err)
	}
	if shown || scene.IsShown("Isocortex") || node.Active || node.Checked {
		t.Errorf("Expected Isocortex hidden and inactive, got shown=%v node=%+v", shown, node)
	}
	if len(scene.Actors()) != 0 {
		t.Errorf("Expected no actors, got %v", scene.Actors())
	}
}

// TestShowHideRoot verifies the root and grey entries only ever add the brain mesh
func TestShowHideRoot(t *testing.T) {
	scene := NewScene(testLocator)
	root := &hierarchy.DisplayNode{Label: "root", Tag: "root"}
	grey := &hierarchy.DisplayNode{Label: "Basic cell groups and regions", Tag: "grey", Depth: 1}

	for i := 0; i < 2; i++ {
		if shown, err := scene.ShowHide(root); err != nil || !shown {
			t.Fatalf("Expected root shown, got %v (err %v)", shown, err)
		}
		if shown, err := scene.ShowHide(grey); err != nil || !shown {
			t.Fatalf("Expected root shown for grey, got %v (err %v)", shown, err)
		}
	}

	if !scene.HasRoot() {
		t.Error("Expected root mesh")
	}
	if root.Active || grey.Active {
		t.Error("Root entries should not change their active state")
	}

	want := []Actor{{Tag: "root", Mesh: "meshes/root.obj"}}
	if got := scene.Actors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestSceneActorOrder verifies actors keep the order they were added in
func TestSceneActorOrder(t *testing.T) {
	scene := NewScene(testLocator)
	ch := &hierarchy.DisplayNode{Tag: "CH"}
	bs := &hierarchy.DisplayNode{Tag: "BS"}
	iso := &hierarchy.DisplayNode{Tag: "Isocortex"}

	for _, n := range []*hierarchy.DisplayNode{ch, bs, iso} {
		if _, err := scene.ShowHide(n); err != nil {
			t.Fatalf("ShowHide failed: %v", err)
		}
	}
	if _, err := scene.ShowHide(bs); err != nil {
		t.Fatalf("ShowHide failed: %v", err)
	}
	if err := scene.AddRoot(); err != nil {
		t.Fatalf("AddRoot failed: %v", err)
	}

	var tags []string
	for _, a := range scene.Actors() {
		tags = append(tags, a.Tag)
	}
	if want := []string{"root", "CH", "Isocortex"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("Expected %v, got %v", want, tags)
	}
}

// TestShowHideMissingMesh verifies locator failures leave the node untouched
func TestShowHideMissingMesh(t *testing.T) {
	scene := NewScene(testLocator)
	node := &hierarchy.DisplayNode{Tag: "missing"}

	if _, err := scene.ShowHide(node); err == nil {
		t.Fatal("Expected error for missing mesh")
	}
	if node.Active || node.Checked || scene.IsShown("missing") {
		t.Error("Failed ShowHide changed state")
	}
}
