package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version shown by --version, typically injected with ldflags.
func SetVersion(v string) {
	version = v
}

// Execute runs the quadpress CLI.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Logs go to logOut.
func newRootCmd(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "quadpress",
		Short:        "quadpress compresses images with a color quadtree",
		Long:         `quadpress approximates uniform regions of an image with a single color using a recursive quadtree partition, and renders the result as a still image or a depth-stepped animation.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("quadpress %s\n", version))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().String("config", "", "TOML file with default settings")

	root.AddCommand(newCompressCmd())
	root.AddCommand(newGIFCmd())
	root.AddCommand(newStatsCmd())

	return root
}
