package report

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"
	"time"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open event log: %v", err)
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("invalid JSONL line %q: %v", scanner.Text(), err)
		}
		events = append(events, e)
	}
	return events
}

func TestEventLoggerWritesJSONL(t *testing.T) {
	logger, err := NewEventLogger(t.TempDir(), LevelInfo)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.LogLoad("bands", 120, 2, 3*time.Millisecond)
	logger.LogFilter(115, 14)
	logger.LogRecommendation(115, 42, 1, 0.87)
	logger.Close()

	events := readEvents(t, logger.Path())
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	if events[0].Event != EventLoad || events[0].Dataset != "bands" || events[0].Rows != 120 {
		t.Errorf("unexpected load event: %+v", events[0])
	}
	if events[1].Event != EventFilter || events[1].TargetID != 115 || events[1].Candidates != 14 {
		t.Errorf("unexpected filter event: %+v", events[1])
	}
	if events[2].Event != EventRecommend || events[2].BandID != 42 || events[2].Rank != 1 {
		t.Errorf("unexpected recommend event: %+v", events[2])
	}

	runID := logger.RunID()
	if runID == "" {
		t.Fatal("run id must be set")
	}
	for _, e := range events {
		if e.RunID != runID {
			t.Errorf("event run id %q differs from logger run id %q", e.RunID, runID)
		}
		if e.Timestamp.IsZero() {
			t.Error("event timestamp must be set")
		}
	}
}

func TestEventLoggerLevelFiltering(t *testing.T) {
	logger, err := NewEventLogger(t.TempDir(), LevelWarning)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.LogSignal(1, "genre", 10, time.Millisecond) // debug, filtered
	logger.LogFilter(1, 5)                             // info, filtered
	logger.LogEmpty(1, "no shared genres")             // warning, kept
	logger.Close()

	events := readEvents(t, logger.Path())
	if len(events) != 1 {
		t.Fatalf("expected 1 event at warning level, got %d", len(events))
	}
	if events[0].Event != EventEmpty || events[0].Reason == "" {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestNullLoggerIsSafe(t *testing.T) {
	logger := NullLogger()

	if err := logger.LogFilter(1, 2); err != nil {
		t.Errorf("null logger must swallow events: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("null logger close: %v", err)
	}
	if logger.Path() != "" {
		t.Errorf("null logger path must be empty")
	}
	if logger.RunID() != "" {
		t.Errorf("null logger run id must be empty")
	}
}
