package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"

	"bgviewer/pkg/regions"
)

// unknownColor is used for labels that have no structure record
var unknownColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// LabelViewer implements the 2D annotation viewer: it answers which
// structure lies under the cursor and renders label slices.
type LabelViewer struct {
	// labels holds the annotation volume in row-major order
	labels []uint32

	// dimensions of the volume
	width  int
	height int
	depth  int

	// index resolves labels to structures
	index *regions.Index

	// opacity of rendered labels, between 0 and 1
	opacity float64
}

// RegionStats summarises the voxels carrying one label
type RegionStats struct {
	Voxels   int
	Centroid [3]float64
}

// NewLabelViewer creates a viewer over an annotation volume
func NewLabelViewer(labels []uint32, width, height, depth int, index *regions.Index, opacity float64) (*LabelViewer, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("volume dimensions must be positive, got %dx%dx%d", width, height, depth)
	}
	if len(labels) != width*height*depth {
		return nil, fmt.Errorf("volume has %d voxels, expected %d", len(labels), width*height*depth)
	}
	if index == nil {
		return nil, fmt.Errorf("a structure index is required")
	}
	if opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("opacity must be between 0 and 1, got %g", opacity)
	}

	return &LabelViewer{
		labels:  labels,
		width:   width,
		height:  height,
		depth:   depth,
		index:   index,
		opacity: opacity,
	}, nil
}

// Dims returns the width, height and depth of the volume
func (v *LabelViewer) Dims() (int, int, int) {
	return v.width, v.height, v.depth
}

// ValueAt returns the label at a voxel, or nil outside the volume
func (v *LabelViewer) ValueAt(x, y, z int) *int {
	if x < 0 || y < 0 || z < 0 || x >= v.width || y >= v.height || z >= v.depth {
		return nil
	}
	value := int(v.labels[z*v.width*v.height+y*v.width+x])
	return &value
}

// HoverText returns the text shown when the cursor is over a voxel
func (v *LabelViewer) HoverText(x, y, z int) string {
	return v.index.Describe(v.ValueAt(x, y, z))
}

// labelColor returns the colour a label is drawn with
func (v *LabelViewer) labelColor(label uint32) color.RGBA {
	if label == regions.NoLabel {
		return color.RGBA{}
	}

	alpha := uint8(math.Round(v.opacity * 255))
	c := unknownColor
	if record, err := v.index.Record(int(label)); err == nil {
		c = color.RGBA{R: record.RGBTriplet[0], G: record.RGBTriplet[1], B: record.RGBTriplet[2], A: 255}
	}

	// image.RGBA stores premultiplied colours
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(alpha) / 255),
		G: uint8(uint16(c.G) * uint16(alpha) / 255),
		B: uint8(uint16(c.B) * uint16(alpha) / 255),
		A: alpha,
	}
}

// ExtractSlice renders a 2D slice of the label volume along the specified axis
func (v *LabelViewer) ExtractSlice(axis string, position int) (*image.RGBA, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	var img *image.RGBA

	switch axis {
	case "x", "X":
		// YZ plane
		if position >= v.width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, v.width)
		}

		img = image.NewRGBA(image.Rect(0, 0, v.depth, v.height))
		for y := 0; y < v.height; y++ {
			for z := 0; z < v.depth; z++ {
				idx := z*v.width*v.height + y*v.width + position
				img.SetRGBA(z, y, v.labelColor(v.labels[idx]))
			}
		}

	case "y", "Y":
		// XZ plane
		if position >= v.height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, v.height)
		}

		img = image.NewRGBA(image.Rect(0, 0, v.width, v.depth))
		for z := 0; z < v.depth; z++ {
			for x := 0; x < v.width; x++ {
				idx := z*v.width*v.height + position*v.width + x
				img.SetRGBA(x, z, v.labelColor(v.labels[idx]))
			}
		}

	case "z", "Z":
		// XY plane
		if position >= v.depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, v.depth)
		}

		img = image.NewRGBA(image.Rect(0, 0, v.width, v.height))
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				idx := position*v.width*v.height + y*v.width + x
				img.SetRGBA(x, y, v.labelColor(v.labels[idx]))
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// RegionStats counts the voxels carrying label and computes their centroid
func (v *LabelViewer) RegionStats(label int) RegionStats {
	var xs, ys, zs []float64

	for z := 0; z < v.depth; z++ {
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				if int(v.labels[z*v.width*v.height+y*v.width+x]) != label {
					continue
				}
				xs = append(xs, float64(x))
				ys = append(ys, float64(y))
				zs = append(zs, float64(z))
			}
		}
	}

	stats := RegionStats{Voxels: len(xs)}
	if stats.Voxels > 0 {
		stats.Centroid = [3]float64{
			stat.Mean(xs, nil),
			stat.Mean(ys, nil),
			stat.Mean(zs, nil),
		}
	}
	return stats
}

// SaveSlice saves an extracted slice as a PNG image
func (v *LabelViewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
