package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/quadpress"
	"github.com/setanarut/quadpress/utils"
)

func newGIFCmd() *cobra.Command {
	var (
		cfg    config
		output string
	)

	cmd := &cobra.Command{
		Use:   "gif [image]",
		Short: "Write a depth-stepped preview animation",
		Long:  `gif renders the tree at its full depth and then at every smaller depth down to --min-depth, and writes the frames as a looping GIF, most detailed first.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveConfig(cmd, cfg)
			if err != nil {
				return err
			}
			return runGIF(cmd.Context(), args[0], outputPath(output, args[0], "preview", "gif"), resolved)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output GIF (default <image>_preview.gif)")
	addConfigFlags(cmd, &cfg)
	return cmd
}

func runGIF(ctx context.Context, input, output string, cfg config) error {
	logger := loggerFromContext(ctx)

	tree, err := buildTree(ctx, input, cfg)
	if err != nil {
		return err
	}
	if cfg.MaxDepth > 0 {
		if err := quadpress.ToMaxDepth(tree, cfg.MaxDepth); err != nil {
			return err
		}
	}

	prog := newProgress(logger)
	seq, err := quadpress.DepthSequence(tree, cfg.MinDepth, cfg.encoding())
	if err != nil {
		return fmt.Errorf("gif: %w", err)
	}
	prog.done("Rendered frames", "frames", len(seq.Frames), "from", seq.StartDepth, "to", seq.MinDepth)

	if err := utils.SaveGIF(seq.Frames, seq.FrameDelay(), output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	logger.Info("Wrote animation", "path", output, "delay", seq.FrameDelay())
	return nil
}
