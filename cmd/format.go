// ABOUTME: Shared output formatting for the dexshare CLI
// ABOUTME: Lipgloss styles, glucose status coloring, and sparkline rendering

package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/loopnlearn/dexshare/models"
)

var (
	colorLow    = lipgloss.Color("#EF4444") // Red - hypoglycemia
	colorOK     = lipgloss.Color("#10B981") // Green - in range
	colorHigh   = lipgloss.Color("#F59E0B") // Amber - hyperglycemia
	colorMuted  = lipgloss.Color("#6B7280") // Gray
	colorAccent = lipgloss.Color("#7C3AED") // Purple

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	lowStyle  = lipgloss.NewStyle().Foreground(colorLow).Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(colorOK).Bold(true)
	highStyle = lipgloss.NewStyle().Foreground(colorHigh).Bold(true)
)

// glucoseStatus returns low/in-range/high relative to the thresholds.
func glucoseStatus(value, low, high uint16) string {
	if value < low {
		return "low"
	}
	if value > high {
		return "high"
	}
	return "in-range"
}

// glucoseStyle returns the style matching a reading's status.
func glucoseStyle(value, low, high uint16) lipgloss.Style {
	switch glucoseStatus(value, low, high) {
	case "low":
		return lowStyle
	case "high":
		return highStyle
	default:
		return okStyle
	}
}

// sparklineBlocks are the Unicode block characters for different heights
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// glucoseSparkline renders a compact trend chart of readings, oldest
// first, one colored block per sample. Values below low render red,
// above high amber, in range green.
func glucoseSparkline(readings []models.Reading, width int, low, high uint16) string {
	if len(readings) == 0 || width <= 0 {
		return ""
	}

	// Service order is newest first; chart reads left to right in time
	values := make([]float64, len(readings))
	for i, r := range readings {
		values[len(readings)-1-i] = float64(r.Value)
	}
	sampled := sampleValues(values, width)

	min, max := sampled[0], sampled[0]
	for _, v := range sampled {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var result string
	for _, v := range sampled {
		block := string(valueToBlock(v, min, max))
		result += glucoseStyle(uint16(v), low, high).Render(block)
	}
	return result
}

// sampleValues resamples the values slice to the target width
func sampleValues(values []float64, width int) []float64 {
	if len(values) == width {
		return values
	}

	result := make([]float64, width)

	if len(values) < width {
		// Repeat the first value on the left so thresholds still color
		// the padding sensibly
		padding := width - len(values)
		for i := 0; i < padding; i++ {
			result[i] = values[0]
		}
		copy(result[padding:], values)
	} else {
		ratio := float64(len(values)) / float64(width)
		for i := 0; i < width; i++ {
			idx := int(float64(i) * ratio)
			if idx >= len(values) {
				idx = len(values) - 1
			}
			result[i] = values[idx]
		}
	}

	return result
}

// valueToBlock converts a value to a block character based on its position in the range
func valueToBlock(value, min, max float64) rune {
	if max == min {
		return sparklineBlocks[len(sparklineBlocks)/2]
	}

	normalized := (value - min) / (max - min)

	idx := int(normalized * float64(len(sparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sparklineBlocks) {
		idx = len(sparklineBlocks) - 1
	}

	return sparklineBlocks[idx]
}
