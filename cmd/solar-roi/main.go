// Command solar-roi replays recorded region captures and exports the
// resulting panel layout without opening a window.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/solar-roi/internal/config"
	"github.com/Faultbox/solar-roi/internal/logger"
)

var (
	flags *config.Flags
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "solar-roi",
	Short: "Capture regions of interest and lay out solar panel arrays",
	Long: `solar-roi replays three-click region captures recorded as YAML scripts,
generates the panel array over the captured region and exports it as OBJ
meshes, GeoJSON and a layout plot.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flags)
		if err != nil {
			return err
		}
		return logger.Init(cfg.Logging.Options())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	flags = config.BindFlags(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
