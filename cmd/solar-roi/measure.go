package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Faultbox/solar-roi/internal/export"
	"github.com/Faultbox/solar-roi/internal/solar"
)

var sunTime string

var measureCmd = &cobra.Command{
	Use:   "measure <script>",
	Short: "Replay a capture script and print its measurements",
	Long: `Replay a capture script and print the captured region's width, length
and area, the panel footprint and the sun geometry over the array.
Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().StringVar(&sunTime, "at", "", "Time for the sun report (RFC 3339, default now)")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	at := time.Now()
	if sunTime != "" {
		t, err := time.Parse(time.RFC3339, sunTime)
		if err != nil {
			return fmt.Errorf("parsing --at: %w", err)
		}
		at = t
	}

	out := cmd.OutOrStdout()
	sess, err := replay(args[0], export.NewMemorySink(), out)
	if err != nil {
		return err
	}
	defer sess.Designer.Close()

	m, err := sess.Designer.Measurements()
	if err != nil {
		return err
	}
	arr := sess.Designer.Array()

	fmt.Fprintln(out, "Region")
	fmt.Fprintln(out, "======")
	fmt.Fprintf(out, "Width:     %.2f m\n", m.Width)
	fmt.Fprintf(out, "Length:    %.2f m\n", m.Length)
	fmt.Fprintf(out, "Area:      %.2f m²\n", m.Area)
	fmt.Fprintf(out, "Footprint: %.2f m²\n", m.Footprint)
	fmt.Fprintf(out, "\nArray: %d x %d panels at %.2f m\n", arr.Rows, arr.Columns, arr.PanelHeight)

	frame, _ := sess.Designer.Frame()
	report, err := solar.At(frame, at)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nSun at %s\n", at.Format(time.RFC3339))
	fmt.Fprintln(out, report)
	if !report.Lit {
		fmt.Fprintln(out, "Panels are not lit at this time")
	}
	return nil
}
