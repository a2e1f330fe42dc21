package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bgviewer/pkg/atlas"
	"bgviewer/pkg/hierarchy"
	"bgviewer/pkg/visualization"
)

// projectTree builds the region tree using the configured options, with an optional policy override
func (a *app) projectTree(at *atlas.Atlas, policy string) (*hierarchy.DisplayNode, error) {
	opts, err := a.cfg.ProjectionOptions()
	if err != nil {
		return nil, err
	}
	if policy != "" {
		if opts.MissingParent, err = hierarchy.ParseMissingParentPolicy(policy); err != nil {
			return nil, err
		}
	}
	return at.Project(opts)
}

// printTree writes one line per node, indented by depth, down to maxDepth (negative for all)
func printTree(w io.Writer, root *hierarchy.DisplayNode, maxDepth int) {
	root.Walk(func(n *hierarchy.DisplayNode) bool {
		if maxDepth >= 0 && n.Depth > maxDepth {
			return false
		}
		box := "[ ]"
		if n.Checked {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s%s %s (%s, %s)\n", strings.Repeat("  ", n.Depth), box, n.Label, n.Tag, n.Tier())
		return true
	})
}

func newTreeCmd(a *app) *cobra.Command {
	var (
		policy   string
		maxDepth int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the region hierarchy as shown in the 3D viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := a.loadAtlas()
			if err != nil {
				return err
			}

			root, err := a.projectTree(at, policy)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), root)
			}
			if !cmd.Flags().Changed("depth") {
				maxDepth = a.cfg.Viewer.ExpandDepth
			}
			printTree(cmd.OutOrStdout(), root, maxDepth)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "missing-parent", "", "Missing parent policy: drop, reparent or fail (overrides the configuration)")
	cmd.Flags().IntVar(&maxDepth, "depth", 0, "Deepest level to print, -1 for all (default: the configured expand depth)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the full tree as JSON")
	return cmd
}

func newSceneCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scene TAG...",
		Short: "Click region tree entries in order and print the meshes the 3D viewer would show",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := a.loadAtlas()
			if err != nil {
				return err
			}

			root, err := a.projectTree(at, "")
			if err != nil {
				return err
			}

			scene := visualization.NewScene(at.MeshFor)
			for _, tag := range args {
				node := root.Find(tag)
				if node == nil {
					return fmt.Errorf("%q is not in the region tree", tag)
				}
				shown, err := scene.ShowHide(node)
				if err != nil {
					return err
				}
				a.logger.WithField("tag", tag).WithField("shown", shown).Debug("region toggled")
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), scene.Actors())
			}
			for _, actor := range scene.Actors() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", actor.Tag, actor.Mesh)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON output")
	return cmd
}
