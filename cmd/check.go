// ABOUTME: Check command for the dexshare CLI
// ABOUTME: Validates the latest glucose reading against alert thresholds

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/loopnlearn/dexshare/models"
)

var (
	lowThreshold  int
	highThreshold int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the latest reading against thresholds",
	Long: `Fetch the latest glucose reading and exit non-zero if it is out of range.

Exit codes:
  0 - Reading is within [low, high]
  1 - Reading is below low or above high
  2 - Error (connectivity, login, no data, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&lowThreshold, "low", int(defaultLowThreshold), "Low glucose threshold in mg/dL")
	checkCmd.Flags().IntVar(&highThreshold, "high", int(defaultHighThreshold), "High glucose threshold in mg/dL")
}

// checkResult is the outcome of a threshold check
type checkResult struct {
	Value     uint16    `json:"value_mg_dl"`
	Trend     string    `json:"trend"`
	Timestamp time.Time `json:"timestamp"`
	Low       uint16    `json:"low"`
	High      uint16    `json:"high"`
	Status    string    `json:"status"`
}

// runCheck executes the threshold check and returns an exit code
func runCheck(ctx context.Context, w io.Writer) int {
	if err := validateThresholds(lowThreshold, highThreshold); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c, err := newShareClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	readings, err := c.FetchLast(ctx, 1)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if len(readings) == 0 {
		fmt.Fprintln(w, "Error: no readings in the last 24 hours")
		return 2
	}

	low, high := uint16(lowThreshold), uint16(highThreshold)
	latest := readings[0]
	result := checkResult{
		Value:     latest.Value,
		Trend:     latest.Trend.String(),
		Timestamp: latest.Timestamp,
		Low:       low,
		High:      high,
		Status:    glucoseStatus(latest.Value, low, high),
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(result))
	} else {
		fmt.Fprintln(w, formatCheckHuman(result, latest))
	}

	if !latest.InRange(low, high) {
		return 1
	}
	return 0
}

// validateThresholds ensures threshold values make sense
func validateThresholds(low, high int) error {
	if low < 1 || low > 400 {
		return fmt.Errorf("--low must be between 1 and 400")
	}
	if high < 1 || high > 400 {
		return fmt.Errorf("--high must be between 1 and 400")
	}
	if low >= high {
		return fmt.Errorf("--low must be less than --high")
	}
	return nil
}

// formatCheckHuman renders the check result for human readability
func formatCheckHuman(result checkResult, r models.Reading) string {
	style := glucoseStyle(result.Value, result.Low, result.High)
	return fmt.Sprintf("%s %s  [%s]  range %d-%d mg/dL  at %s",
		style.Render(fmt.Sprintf("%d mg/dL", result.Value)),
		r.Trend.Arrow(),
		result.Status,
		result.Low, result.High,
		result.Timestamp.Local().Format("15:04"))
}

// formatCheckJSON renders the check result as JSON
func formatCheckJSON(result checkResult) string {
	data, _ := json.MarshalIndent(result, "", "  ")
	return string(data)
}
