package visualization

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// ReadLabelVolume reads a raw annotation volume: width*height*depth
// little-endian uint32 labels in row-major order, x varying fastest.
func ReadLabelVolume(path string, width, height, depth int) ([]uint32, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("volume dimensions must be positive, got %dx%dx%d", width, height, depth)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading label volume: %w", err)
	}

	voxels := width * height * depth
	if len(data) != voxels*4 {
		return nil, fmt.Errorf("label volume %s has %d bytes, expected %d for %dx%dx%d", path, len(data), voxels*4, width, height, depth)
	}

	labels := make([]uint32, voxels)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, labels); err != nil {
		return nil, fmt.Errorf("error decoding label volume: %w", err)
	}
	return labels, nil
}

// WriteLabelVolume writes labels in the layout ReadLabelVolume expects
func WriteLabelVolume(path string, labels []uint32) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, labels); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
