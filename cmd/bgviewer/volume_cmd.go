package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bgviewer/pkg/atlas"
	"bgviewer/pkg/visualization"
)

// loadViewer opens the raw annotation volume of an atlas
func (a *app) loadViewer(at *atlas.Atlas) (*visualization.LabelViewer, error) {
	width, height, depth, err := at.Shape()
	if err != nil {
		return nil, err
	}
	labels, err := visualization.ReadLabelVolume(at.Paths.Labels, width, height, depth)
	if err != nil {
		return nil, err
	}
	return visualization.NewLabelViewer(labels, width, height, depth, at.Index, a.cfg.Viewer.AnnotationsOpacity)
}

// parseCoords parses integer voxel coordinates
func parseCoords(args []string) ([]int, error) {
	coords := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", arg)
		}
		coords[i] = v
	}
	return coords, nil
}

func newHoverCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "hover X Y Z",
		Short: "Print the region under a voxel of the annotation volume",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := parseCoords(args)
			if err != nil {
				return err
			}

			at, err := a.loadAtlas()
			if err != nil {
				return err
			}
			viewer, err := a.loadViewer(at)
			if err != nil {
				return err
			}

			x, y, z := coords[0], coords[1], coords[2]
			text := viewer.HoverText(x, y, z)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					Value *int   `json:"value"`
					Text  string `json:"text"`
				}{viewer.ValueAt(x, y, z), text})
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON output")
	return cmd
}

func newSliceCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "slice AXIS POSITION",
		Short: "Render a slice of the annotation volume with structure colours as PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis := args[0]
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}

			at, err := a.loadAtlas()
			if err != nil {
				return err
			}
			viewer, err := a.loadViewer(at)
			if err != nil {
				return err
			}

			img, err := viewer.ExtractSlice(axis, position)
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("slice_%s_%03d.png", axis, position)
			}
			if err := viewer.SaveSlice(img, output); err != nil {
				return err
			}

			a.logger.WithFields(logrus.Fields{
				"axis":     axis,
				"position": position,
				"opacity":  a.cfg.Viewer.AnnotationsOpacity,
			}).Info("slice saved")
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PNG file (default slice_<axis>_<position>.png)")
	return cmd
}

func newVoxelsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "voxels ACRONYM",
		Short: "Count the voxels labelled with a structure and print their centroid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := a.loadAtlas()
			if err != nil {
				return err
			}
			id, err := at.IDFromAcronym(args[0])
			if err != nil {
				return err
			}
			viewer, err := a.loadViewer(at)
			if err != nil {
				return err
			}

			stats := viewer.RegionStats(id)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d voxels\tcentroid (%.2f, %.2f, %.2f)\n",
				args[0], stats.Voxels, stats.Centroid[0], stats.Centroid[1], stats.Centroid[2])
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON output")
	return cmd
}
