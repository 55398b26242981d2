// ABOUTME: Readings command for the dexshare CLI
// ABOUTME: Fetches and displays the most recent glucose readings

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/loopnlearn/dexshare/models"
)

var readingCount int

// Default display thresholds in mg/dL, overridable per command where it
// matters (check).
const (
	defaultLowThreshold  uint16 = 70
	defaultHighThreshold uint16 = 180
)

var readingsCmd = &cobra.Command{
	Use:   "readings",
	Short: "Show recent glucose readings",
	Long:  `Fetch the most recent glucose readings from the last 24 hours and display them newest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReadings(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(readingsCmd)
	readingsCmd.Flags().IntVar(&readingCount, "count", 10, "Number of readings to fetch")
}

// runReadings fetches readings and returns an exit code
func runReadings(ctx context.Context, w io.Writer) int {
	if readingCount < 1 {
		fmt.Fprintln(w, "Error: --count must be at least 1")
		return 2
	}

	c, err := newShareClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	readings, err := c.FetchLast(ctx, readingCount)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatReadingsJSON(readings))
	} else {
		fmt.Fprintln(w, formatReadingsHuman(readings))
	}
	return 0
}

// formatReadingsHuman renders readings as a table with a trend sparkline
func formatReadingsHuman(readings []models.Reading) string {
	if len(readings) == 0 {
		return "No readings in the last 24 hours."
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Glucose readings"))
	sb.WriteString("\n\n")

	for _, r := range readings {
		style := glucoseStyle(r.Value, defaultLowThreshold, defaultHighThreshold)
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n",
			mutedStyle.Render(r.Timestamp.Local().Format("Jan 02 15:04")),
			style.Render(fmt.Sprintf("%3d mg/dL", r.Value)),
			r.Trend.Arrow()))
	}

	sb.WriteString("\n")
	sb.WriteString(glucoseSparkline(readings, len(readings), defaultLowThreshold, defaultHighThreshold))
	return sb.String()
}

// formatReadingsJSON renders readings as indented JSON
func formatReadingsJSON(readings []models.Reading) string {
	data, _ := json.MarshalIndent(readings, "", "  ")
	return string(data)
}
