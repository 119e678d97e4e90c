package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:   "stats [image]",
		Short: "Print tree depth and node counts for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveConfig(cmd, cfg)
			if err != nil {
				return err
			}
			tree, err := buildTree(cmd.Context(), args[0], resolved)
			if err != nil {
				return err
			}
			nodes, leaves := tree.Count()
			pixels := tree.Dx() * tree.Dy()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "size:   %dx%d\n", tree.Dx(), tree.Dy())
			fmt.Fprintf(out, "depth:  %d\n", tree.Depth())
			fmt.Fprintf(out, "nodes:  %d\n", nodes)
			fmt.Fprintf(out, "leaves: %d (%.2f%% of pixels)\n", leaves, 100*float64(leaves)/float64(pixels))
			return nil
		},
	}

	addConfigFlags(cmd, &cfg)
	return cmd
}
