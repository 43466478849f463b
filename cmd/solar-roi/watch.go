package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/export"
	"github.com/Faultbox/solar-roi/internal/logger"
	"github.com/Faultbox/solar-roi/internal/watcher"
)

var debounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <script>",
	Short: "Re-export the layout whenever the script changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&noGeoJSON, "no-geojson", false, "Skip the GeoJSON footprint")
	watchCmd.Flags().BoolVar(&noPlot, "no-plot", false, "Skip the layout plot")
	watchCmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Wait this long after the last write before re-exporting")
}

func runWatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := args[0]

	rerun := func(string) {
		sess, err := replay(path, export.DirSink{Dir: cfg.Export.Dir}, out)
		if err != nil {
			logger.Warn("replay failed", zap.String("script", path), zap.Error(err))
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		defer sess.Designer.Close()
		if err := sess.Designer.SaveAll(!noGeoJSON, !noPlot); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "Exported %d panels to %s\n", len(sess.Designer.Cells()), cfg.Export.Dir)
	}

	fw, err := watcher.New(debounce, logger.Named("watcher"))
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch([]string{path}, rerun); err != nil {
		return err
	}
	rerun(path)
	fw.Start()
	fmt.Fprintf(out, "Watching %s, press Ctrl+C to stop\n", path)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
