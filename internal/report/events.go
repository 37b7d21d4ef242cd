package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	EventLoad      EventType = "load"
	EventRefresh   EventType = "refresh"
	EventFilter    EventType = "filter"
	EventSignal    EventType = "signal"
	EventRecommend EventType = "recommend"
	EventEmpty     EventType = "empty"
	EventError     EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single event in the pipeline
type Event struct {
	Timestamp  time.Time         `json:"ts"`
	Level      EventLevel        `json:"level"`
	Event      EventType         `json:"event"`
	RunID      string            `json:"run_id,omitempty"`
	TargetID   int64             `json:"target_id,omitempty"`
	BandID     int64             `json:"band_id,omitempty"`
	Signal     string            `json:"signal,omitempty"`
	Candidates int               `json:"candidates,omitempty"`
	Score      float64           `json:"score,omitempty"`
	Rank       int               `json:"rank,omitempty"`
	Dataset    string            `json:"dataset,omitempty"`
	Rows       int               `json:"rows,omitempty"`
	Skipped    int               `json:"skipped,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	Duration   int64             `json:"duration_ms,omitempty"`
	Error      string            `json:"error,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file. Every logger carries a run
// identifier so events from concurrent invocations can be separated.
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	runID    string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger with a minimum log level
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("events-%s.jsonl", timestamp)
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		runID:    uuid.NewString(),
		minLevel: minLevel,
	}, nil
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RunID == "" {
		event.RunID = l.runID
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogLoad logs a dataset ingest event
func (l *EventLogger) LogLoad(dataset string, rows, skipped int, duration time.Duration) error {
	level := LevelInfo
	if skipped > 0 {
		level = LevelWarning
	}

	return l.Log(&Event{
		Level:    level,
		Event:    EventLoad,
		Dataset:  dataset,
		Rows:     rows,
		Skipped:  skipped,
		Duration: duration.Milliseconds(),
	})
}

// LogRefresh logs a catalog refresh event
func (l *EventLogger) LogRefresh(bands, edges int) error {
	return l.Log(&Event{
		Level: LevelInfo,
		Event: EventRefresh,
		Extra: map[string]string{
			"bands": fmt.Sprintf("%d", bands),
			"edges": fmt.Sprintf("%d", edges),
		},
	})
}

// LogFilter logs a genre overlap filter event
func (l *EventLogger) LogFilter(targetID int64, candidates int) error {
	return l.Log(&Event{
		Level:      LevelInfo,
		Event:      EventFilter,
		TargetID:   targetID,
		Candidates: candidates,
	})
}

// LogSignal logs completion of one similarity signal
func (l *EventLogger) LogSignal(targetID int64, signal string, scored int, duration time.Duration) error {
	return l.Log(&Event{
		Level:      LevelDebug,
		Event:      EventSignal,
		TargetID:   targetID,
		Signal:     signal,
		Candidates: scored,
		Duration:   duration.Milliseconds(),
	})
}

// LogRecommendation logs one ranked output row
func (l *EventLogger) LogRecommendation(targetID, bandID int64, rank int, total float64) error {
	return l.Log(&Event{
		Level:    LevelInfo,
		Event:    EventRecommend,
		TargetID: targetID,
		BandID:   bandID,
		Rank:     rank,
		Score:    total,
	})
}

// LogEmpty logs an empty-result outcome with its diagnostic
func (l *EventLogger) LogEmpty(targetID int64, reason string) error {
	return l.Log(&Event{
		Level:    LevelWarning,
		Event:    EventEmpty,
		TargetID: targetID,
		Reason:   reason,
	})
}

// LogError logs an error event
func (l *EventLogger) LogError(event EventType, targetID int64, err error) error {
	return l.Log(&Event{
		Level:    LevelError,
		Event:    event,
		TargetID: targetID,
		Error:    err.Error(),
	})
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

// Path returns the path to the event log file
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// RunID returns the logger's run identifier
func (l *EventLogger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// NullLogger returns a no-op event logger
func NullLogger() *EventLogger {
	return nil
}
