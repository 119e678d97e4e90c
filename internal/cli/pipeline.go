package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/setanarut/quadpress"
	"github.com/setanarut/quadpress/utils"
)

// buildTree loads path and grows a collapsed quadtree over it, posterizing
// the leaves when a palette size is configured.
func buildTree(ctx context.Context, path string, cfg config) (*quadpress.Node, error) {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	raster, err := utils.LoadRaster(path, float32(cfg.Blur))
	if err != nil {
		return nil, err
	}
	prog.done("Loaded image", "path", path, "size", raster.W)

	prog = newProgress(logger)
	tree, err := quadpress.BuildTree(raster, cfg.options())
	if err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}
	tree.Collapse()
	nodes, leaves := tree.Count()
	prog.done("Built tree", "depth", tree.Depth(), "nodes", nodes, "leaves", leaves)

	if cfg.Palette > 0 {
		prog = newProgress(logger)
		method, _ := utils.ParsePaletteMethod(cfg.PaletteMethod)
		pal := utils.ExtractPalette(raster.Image(), cfg.Palette, method)
		utils.SortPaletteByBrightness(pal)
		quadpress.Posterize(tree, pal)
		_, leaves = tree.Count()
		prog.done("Posterized", "colors", len(pal), "method", method, "leaves", leaves)
	}
	return tree, nil
}

// outputPath derives "<input>_<suffix>.<ext>" when no output was given.
func outputPath(output, input, suffix, ext string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_" + suffix + "." + ext
}
