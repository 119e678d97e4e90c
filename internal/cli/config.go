package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/setanarut/quadpress"
	"github.com/setanarut/quadpress/utils"
)

// config holds the tunables shared by every command. A TOML file supplies
// defaults; explicitly set flags win.
type config struct {
	Threshold     float64 `toml:"threshold"`      // just-noticeable color difference
	Metric        string  `toml:"metric"`         // "redmean" or "ciede2000"
	MaxDepth      int     `toml:"max_depth"`      // 0 keeps the full depth
	MinDepth      int     `toml:"min_depth"`      // last depth of the gif sequence
	Borders       bool    `toml:"borders"`        // draw the grid-lined encoding
	Blur          float64 `toml:"blur"`           // Gaussian sigma applied before building
	Palette       int     `toml:"palette"`        // posterize to this many colors, 0 disables
	PaletteMethod string  `toml:"palette_method"` // "dominantcolor" or "kmeans"
}

func defaultConfig() config {
	opt := quadpress.DefaultOptions()
	return config{
		Threshold:     opt.Threshold,
		Metric:        opt.Metric.String(),
		MinDepth:      1,
		PaletteMethod: utils.PaletteMethodDominantColor.String(),
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// addConfigFlags binds the shared flags to cfg.
func addConfigFlags(cmd *cobra.Command, cfg *config) {
	def := defaultConfig()
	cmd.Flags().Float64VarP(&cfg.Threshold, "threshold", "t", def.Threshold, "just-noticeable color difference")
	cmd.Flags().StringVar(&cfg.Metric, "metric", def.Metric, "color metric: redmean (default), ciede2000")
	cmd.Flags().IntVarP(&cfg.MaxDepth, "max-depth", "d", 0, "limit tree depth (0 keeps full depth)")
	cmd.Flags().IntVar(&cfg.MinDepth, "min-depth", def.MinDepth, "last depth of the gif sequence")
	cmd.Flags().BoolVarP(&cfg.Borders, "borders", "b", false, "draw the grid-lined encoding")
	cmd.Flags().Float64Var(&cfg.Blur, "blur", 0, "Gaussian blur sigma applied before building")
	cmd.Flags().IntVar(&cfg.Palette, "palette", 0, "posterize leaves to N palette colors (0 disables)")
	cmd.Flags().StringVar(&cfg.PaletteMethod, "palette-method", def.PaletteMethod, "palette method: dominantcolor (default), kmeans")
}

// resolveConfig merges the config file named by --config under the flag
// values, keeping every flag the user set explicitly.
func resolveConfig(cmd *cobra.Command, flagged config) (config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(path)
	if err != nil {
		return cfg, err
	}
	set := cmd.Flags().Changed
	if set("threshold") {
		cfg.Threshold = flagged.Threshold
	}
	if set("metric") {
		cfg.Metric = flagged.Metric
	}
	if set("max-depth") {
		cfg.MaxDepth = flagged.MaxDepth
	}
	if set("min-depth") {
		cfg.MinDepth = flagged.MinDepth
	}
	if set("borders") {
		cfg.Borders = flagged.Borders
	}
	if set("blur") {
		cfg.Blur = flagged.Blur
	}
	if set("palette") {
		cfg.Palette = flagged.Palette
	}
	if set("palette-method") {
		cfg.PaletteMethod = flagged.PaletteMethod
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("invalid threshold: %v (must be >= 0)", c.Threshold)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max depth: %d (must be >= 0)", c.MaxDepth)
	}
	if c.MinDepth < 1 {
		return fmt.Errorf("invalid min depth: %d (must be >= 1)", c.MinDepth)
	}
	if c.Palette < 0 {
		return fmt.Errorf("invalid palette size: %d (must be >= 0)", c.Palette)
	}
	if _, err := quadpress.ParseMetric(c.Metric); err != nil {
		return err
	}
	_, err := utils.ParsePaletteMethod(c.PaletteMethod)
	return err
}

func (c config) options() quadpress.Options {
	m, _ := quadpress.ParseMetric(c.Metric)
	return quadpress.Options{Threshold: c.Threshold, Metric: m}
}

func (c config) encoding() quadpress.Encoding {
	if c.Borders {
		return quadpress.EncodingBordered
	}
	return quadpress.EncodingFilled
}
