// ABOUTME: Tests for the watch command's bubbletea model
// ABOUTME: Verifies state transitions and view rendering without a terminal

package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loopnlearn/dexshare/models"
)

func newTestWatchModel(t *testing.T) *watchModel {
	t.Helper()
	return newWatchModel(nil, time.Minute)
}

func TestWatchModel_ReadingsMsgUpdatesState(t *testing.T) {
	m := newTestWatchModel(t)

	readings := []models.Reading{
		{Value: 110, Trend: models.TrendFlat, Timestamp: time.Now()},
	}
	updated, cmd := m.Update(readingsMsg{readings: readings})

	wm := updated.(*watchModel)
	if wm.fetching {
		t.Error("Expected fetching to be cleared after readings arrive")
	}
	if len(wm.readings) != 1 {
		t.Errorf("Expected 1 reading, got %d", len(wm.readings))
	}
	if cmd == nil {
		t.Error("Expected a scheduled refresh command")
	}
}

func TestWatchModel_ErrorKeepsLastReadings(t *testing.T) {
	m := newTestWatchModel(t)
	m.readings = []models.Reading{{Value: 110, Trend: models.TrendFlat}}

	updated, _ := m.Update(readingsMsg{err: errors.New("boom")})

	wm := updated.(*watchModel)
	if len(wm.readings) != 1 {
		t.Error("Expected stale readings to be kept on fetch error")
	}
	if wm.err == nil {
		t.Error("Expected error to be recorded")
	}
}

func TestWatchModel_QuitKey(t *testing.T) {
	m := newTestWatchModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected quit message from q key")
	}
}

func TestWatchModel_View(t *testing.T) {
	m := newTestWatchModel(t)
	m.readings = []models.Reading{
		{Value: 110, Trend: models.TrendFlat, Timestamp: time.Unix(1462404576, 0)},
		{Value: 105, Trend: models.TrendFlat, Timestamp: time.Unix(1462404276, 0)},
	}
	m.fetching = false

	view := m.View()
	if !strings.Contains(view, "110 mg/dL") {
		t.Errorf("Expected current value in view, got %q", view)
	}
	if !strings.Contains(view, "q quit") {
		t.Error("Expected help line in view")
	}
}

func TestWatchModel_ViewNarrowTerminal(t *testing.T) {
	m := newTestWatchModel(t)
	m.readings = []models.Reading{
		{Value: 110, Trend: models.TrendFlat, Timestamp: time.Unix(1462404576, 0)},
		{Value: 105, Trend: models.TrendFlat, Timestamp: time.Unix(1462404276, 0)},
	}
	m.fetching = false
	m.width = 2

	view := m.View()
	if !strings.Contains(view, "110 mg/dL") {
		t.Error("Expected current value in view on a narrow terminal")
	}
	if !strings.ContainsAny(view, "▁▂▃▄▅▆▇█") {
		t.Error("Expected the sparkline to degrade to a single block, not vanish")
	}
}

func TestWatchModel_ViewWhileFetching(t *testing.T) {
	m := newTestWatchModel(t)

	view := m.View()
	if !strings.Contains(view, "Fetching") {
		t.Errorf("Expected fetching indicator in initial view, got %q", view)
	}
}
