// ABOUTME: Watch command for the dexshare CLI
// ABOUTME: Live terminal view polling the Share service on an interval

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/loopnlearn/dexshare/models"
	"github.com/loopnlearn/dexshare/share"
)

var watchInterval time.Duration

const watchHistoryCount = 36 // 3 hours of 5-minute readings

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live glucose view",
	Long:  `Poll the Share service and display the current glucose value, trend, and recent history. Press q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newShareClient()
		if err != nil {
			return err
		}

		m := newWatchModel(c, watchInterval)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 60*time.Second, "Refresh interval")
}

// readingsMsg carries the result of a background fetch
type readingsMsg struct {
	readings []models.Reading
	err      error
}

// refreshMsg triggers the next fetch
type refreshMsg struct{}

// watchModel is the bubbletea model for the live view
type watchModel struct {
	client   *share.Client
	interval time.Duration

	readings []models.Reading
	err      error
	updated  time.Time

	spinner  spinner.Model
	fetching bool
	width    int
}

func newWatchModel(c *share.Client, interval time.Duration) *watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &watchModel{
		client:   c,
		interval: interval,
		spinner:  s,
		fetching: true,
		width:    60,
	}
}

// Init implements tea.Model
func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchReadings())
}

// Update implements tea.Model
func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.fetching {
				m.fetching = true
				return m, tea.Batch(m.spinner.Tick, m.fetchReadings())
			}
		}
		return m, nil

	case readingsMsg:
		m.fetching = false
		m.err = msg.err
		if msg.err == nil {
			m.readings = msg.readings
			m.updated = time.Now()
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg {
			return refreshMsg{}
		})

	case refreshMsg:
		m.fetching = true
		return m, tea.Batch(m.spinner.Tick, m.fetchReadings())

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m *watchModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("dexshare watch"))
	sb.WriteString("\n\n")

	if len(m.readings) == 0 {
		if m.err != nil {
			sb.WriteString(lowStyle.Render("Error: " + m.err.Error()))
			sb.WriteString("\n")
		} else if m.fetching {
			sb.WriteString(m.spinner.View() + " Fetching readings...\n")
		}
		sb.WriteString(m.helpView())
		return sb.String()
	}

	latest := m.readings[0]
	style := glucoseStyle(latest.Value, defaultLowThreshold, defaultHighThreshold)
	sb.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		style.Render(fmt.Sprintf("%d mg/dL", latest.Value)),
		latest.Trend.Arrow(),
		mutedStyle.Render(latest.Timestamp.Local().Format("15:04"))))

	width := len(m.readings)
	if width > m.width-2 {
		width = m.width - 2
	}
	if width < 1 {
		width = 1
	}
	sb.WriteString(glucoseSparkline(m.readings, width, defaultLowThreshold, defaultHighThreshold))
	sb.WriteString("\n\n")

	if m.fetching {
		sb.WriteString(m.spinner.View() + " Refreshing...\n")
	} else if !m.updated.IsZero() {
		sb.WriteString(mutedStyle.Render("Updated " + m.updated.Format("15:04:05")))
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString(lowStyle.Render("Last fetch failed: " + m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(m.helpView())
	return sb.String()
}

func (m *watchModel) helpView() string {
	return mutedStyle.Render("\nr refresh • q quit")
}

// fetchReadings fetches history in the background
func (m *watchModel) fetchReadings() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.interval)
		defer cancel()

		readings, err := m.client.FetchLast(ctx, watchHistoryCount)
		return readingsMsg{readings: readings, err: err}
	}
}
