package observability

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypePlan      EventType = "plan"
	EventTypeLookup    EventType = "lookup"
	EventTypeStore     EventType = "store"
	EventTypeHTTP      EventType = "http"
	EventTypeHeartbeat EventType = "heartbeat"
	EventTypeLLM       EventType = "llm"
)

// Event represents a structured log entry.
type Event struct {
	Type      EventType `json:"type"`
	RequestID string    `json:"request_id,omitempty"`
	PlanID    int64     `json:"plan_id,omitempty"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Logger handles structured logging.
type Logger struct {
	llmLogPath string
	maxSize    int64
}

func NewLogger() *Logger {
	return &Logger{
		llmLogPath: filepath.Join("logs", "llm.jsonl"),
		maxSize:    10 * 1024 * 1024, // 10MB
	}
}

// Log emits a structured JSON event to stdout. A nil logger is a
// no-op so wiring can stay optional in tests.
func (l *Logger) Log(evt Event) {
	if l == nil {
		return
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		fmt.Printf("{\"error\": \"failed to marshal event: %v\"}\n", err)
		return
	}
	fmt.Println(string(data))

	if evt.Type == EventTypeLLM {
		l.writeToFile(data)
	}
}

func (l *Logger) writeToFile(data []byte) {
	if err := os.MkdirAll(filepath.Dir(l.llmLogPath), 0755); err != nil {
		log.Printf("failed to create log directory: %v", err)
		return
	}

	// Check size before writing
	info, err := os.Stat(l.llmLogPath)
	if err == nil && info.Size() > l.maxSize {
		l.rotateLogs()
	}

	f, err := os.OpenFile(l.llmLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("failed to write to log file: %v", err)
	}
}

func (l *Logger) rotateLogs() {
	// Simple rotation: keep one .old file
	oldPath := l.llmLogPath + ".old"
	_ = os.Remove(oldPath)
	_ = os.Rename(l.llmLogPath, oldPath)
}

// Helper methods for common events

func (l *Logger) LogPlanCreated(requestID string, planID int64, goal string, days int) {
	l.Log(Event{
		Type:      EventTypePlan,
		RequestID: requestID,
		PlanID:    planID,
		Data: map[string]any{
			"goal": goal,
			"days": days,
		},
	})
}

func (l *Logger) LogPlanFailed(requestID, goal, reason string) {
	l.Log(Event{
		Type:      EventTypePlan,
		RequestID: requestID,
		Data: map[string]string{
			"goal":   goal,
			"status": "failed",
			"reason": reason,
		},
	})
}

func (l *Logger) LogLookup(requestID, name, query string, elapsed time.Duration) {
	l.Log(Event{
		Type:      EventTypeLookup,
		RequestID: requestID,
		Data: map[string]any{
			"lookup":      name,
			"query":       query,
			"duration_ms": elapsed.Milliseconds(),
		},
	})
}

func (l *Logger) LogPlanDeleted(requestID string, planID int64) {
	l.Log(Event{
		Type:      EventTypeStore,
		RequestID: requestID,
		PlanID:    planID,
		Data:      map[string]string{"action": "delete"},
	})
}

func (l *Logger) LogHTTP(requestID, method, path string, status int, elapsed time.Duration) {
	l.Log(Event{
		Type:      EventTypeHTTP,
		RequestID: requestID,
		Data: map[string]any{
			"method":      method,
			"path":        path,
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
		},
	})
}

func (l *Logger) LogHeartbeat() {
	l.Log(Event{
		Type: EventTypeHeartbeat,
		Data: map[string]string{"status": "alive"},
	})
}

func (l *Logger) LogLLM(requestID string, prompt any, response string) {
	l.Log(Event{
		Type:      EventTypeLLM,
		RequestID: requestID,
		Data: map[string]any{
			"prompt":   prompt,
			"response": response,
		},
	})
}
