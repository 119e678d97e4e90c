package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/quadpress"
	"github.com/setanarut/quadpress/utils"
)

func newCompressCmd() *cobra.Command {
	var (
		cfg    config
		output string
	)

	cmd := &cobra.Command{
		Use:   "compress [image]",
		Short: "Compress an image and write it as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveConfig(cmd, cfg)
			if err != nil {
				return err
			}
			return runCompress(cmd.Context(), args[0], outputPath(output, args[0], "compressed", "png"), resolved)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG (default <image>_compressed.png)")
	addConfigFlags(cmd, &cfg)
	return cmd
}

func runCompress(ctx context.Context, input, output string, cfg config) error {
	logger := loggerFromContext(ctx)

	tree, err := buildTree(ctx, input, cfg)
	if err != nil {
		return err
	}

	maxDepth := cfg.MaxDepth
	if maxDepth == 0 {
		maxDepth = tree.Depth()
	}
	prog := newProgress(logger)
	img, err := quadpress.Compress(tree, maxDepth, cfg.Borders)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	prog.done("Rendered", "depth", tree.Depth(), "encoding", cfg.encoding())

	if err := utils.SaveImage(img, output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	logger.Info("Wrote image", "path", output)
	return nil
}
