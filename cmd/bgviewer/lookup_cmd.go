package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bgviewer/pkg/atlas"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the atlas metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := a.loadAtlas()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), atlas.FormatMetadata(at.Metadata))
			return nil
		},
	}
}

// parseAtlasValue parses a label value; "none" stands for an empty cursor position
func parseAtlasValue(s string) (*int, error) {
	if strings.EqualFold(s, "none") {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid atlas value %q", s)
	}
	return &v, nil
}

func newDescribeCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe VALUE...",
		Short: "Print the hover text for atlas values (use \"none\" for no value)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := a.loadAtlas()
			if err != nil {
				return err
			}

			type description struct {
				Value *int   `json:"value"`
				Text  string `json:"text"`
			}
			out := make([]description, 0, len(args))
			for _, arg := range args {
				value, err := parseAtlasValue(arg)
				if err != nil {
					return err
				}
				out = append(out, description{Value: value, Text: at.Index.Describe(value)})
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			for _, d := range out {
				fmt.Fprintln(cmd.OutOrStdout(), d.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON output")
	return cmd
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path VALUE",
		Short: "Print the structure id path of an atlas value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid atlas value %q", args[0])
			}

			at, err := a.loadAtlas()
			if err != nil {
				return err
			}

			path, err := at.Index.StructurePath(value)
			if err != nil {
				return err
			}

			parts := make([]string, len(path))
			for i, id := range path {
				parts[i] = strconv.Itoa(id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, "/"))
			return nil
		},
	}
}
