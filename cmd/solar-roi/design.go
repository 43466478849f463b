package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/export"
	"github.com/Faultbox/solar-roi/internal/logger"
)

var (
	noGeoJSON bool
	noPlot    bool
)

var designCmd = &cobra.Command{
	Use:   "design <script>",
	Short: "Replay a capture script and export the layout",
	Long: `Replay a capture script and write the region and panel array meshes to
the export directory, together with a GeoJSON footprint and a layout plot.`,
	Args: cobra.ExactArgs(1),
	RunE: runDesign,
}

func init() {
	rootCmd.AddCommand(designCmd)

	designCmd.Flags().BoolVar(&noGeoJSON, "no-geojson", false, "Skip the GeoJSON footprint")
	designCmd.Flags().BoolVar(&noPlot, "no-plot", false, "Skip the layout plot")
}

func runDesign(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	sink := export.DirSink{Dir: cfg.Export.Dir}

	sess, err := replay(args[0], sink, out)
	if err != nil {
		return err
	}
	defer sess.Designer.Close()

	if err := sess.Designer.SaveAll(!noGeoJSON, !noPlot); err != nil {
		return err
	}
	logger.Info("layout exported",
		zap.String("dir", cfg.Export.Dir),
		zap.Int("panels", len(sess.Designer.Cells())))
	fmt.Fprintf(out, "Exported %d panels to %s\n", len(sess.Designer.Cells()), cfg.Export.Dir)
	return nil
}
