// ABOUTME: Tests for the readings command
// ABOUTME: Verifies output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/loopnlearn/dexshare/models"
)

func TestFormatReadingsHuman(t *testing.T) {
	readings := []models.Reading{
		{Value: 120, Trend: models.TrendSingleUp, Timestamp: time.Unix(1462404876, 0)},
		{Value: 112, Trend: models.TrendFlat, Timestamp: time.Unix(1462404576, 0)},
	}

	output := formatReadingsHuman(readings)

	if !bytes.Contains([]byte(output), []byte("120 mg/dL")) {
		t.Error("Expected output to contain the reading value")
	}
	if !bytes.Contains([]byte(output), []byte("→")) {
		t.Error("Expected output to contain a trend arrow")
	}
}

func TestFormatReadingsHuman_Empty(t *testing.T) {
	output := formatReadingsHuman(nil)
	if !bytes.Contains([]byte(output), []byte("No readings")) {
		t.Errorf("Expected empty-state message, got %q", output)
	}
}

func TestFormatReadingsJSON(t *testing.T) {
	readings := []models.Reading{
		{Value: 100, Trend: models.TrendFlat, Timestamp: time.Unix(1000000000, 0)},
	}

	output := formatReadingsJSON(readings)

	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("Expected 1 element, got %d", len(parsed))
	}
	if parsed[0]["value_mg_dl"] != float64(100) {
		t.Errorf("Expected value 100 in JSON, got %v", parsed[0]["value_mg_dl"])
	}
}

func TestReadingsCommand_Success(t *testing.T) {
	useMockShare(t, newMockShareServer(t, `[
		{"Value":120,"Trend":"SingleUp","WT":"/Date(1462404876000)/"},
		{"Value":112,"Trend":"Flat","WT":"/Date(1462404576000)/"}
	]`))

	var buf bytes.Buffer
	exitCode := runReadings(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("112")) {
		t.Errorf("Expected reading values in output, got %s", buf.String())
	}
}

func TestReadingsCommand_InvalidCount(t *testing.T) {
	readingCount = 0
	defer func() { readingCount = 10 }()

	var buf bytes.Buffer
	exitCode := runReadings(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("Expected exit code 2 for invalid count, got %d", exitCode)
	}
}

func TestReadingsCommand_LoginRejected(t *testing.T) {
	server := newMockShareServerWithLogin(t, `{"Code":"SSO_AuthenticateAccountNotFound"}`, `[]`)
	useMockShare(t, server)

	var buf bytes.Buffer
	exitCode := runReadings(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("Expected exit code 2 on login rejection, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("SSO_AuthenticateAccountNotFound")) {
		t.Errorf("Expected service error code in output, got %s", buf.String())
	}
}
