package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/gesture"
)

// DebugLogger logs pointer input, gestures, and persistence failures to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "weekgrid-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	return initDebugLogger(enabled, DebugLogPath)
}

func initDebugLogger(enabled bool, logPath string) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": logPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
		debugLog.file = nil
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

func debugEnabled() bool {
	return debugLog != nil && debugLog.enabled
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if !debugEnabled() {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogMouse logs a raw mouse event. Plain hover motion is skipped.
func LogMouse(msg tea.MouseMsg, captured bool) {
	if !debugEnabled() {
		return
	}
	if msg.Action == tea.MouseActionMotion && !captured {
		return
	}
	debugLog.log("MOUSE", map[string]any{
		"x":        msg.X,
		"y":        msg.Y,
		"mouse":    tea.MouseEvent(msg).String(),
		"captured": captured,
	})
}

// LogGestureStart logs the decision that opened a gesture session.
func LogGestureStart(d gesture.Decision) {
	if !debugEnabled() {
		return
	}
	debugLog.log("GESTURE_START", map[string]any{
		"mode":   d.Mode.String(),
		"origin": d.Origin,
		"edge":   d.Edge.String(),
		"block":  blockFields(d.Block),
	})
}

// LogGestureCommit logs the outcome of a released gesture.
func LogGestureCommit(c gesture.Commit) {
	if !debugEnabled() {
		return
	}
	data := map[string]any{
		"mode":    c.Mode.String(),
		"applied": c.Applied,
	}
	if c.Applied {
		data["block"] = blockFields(c.Block)
	}
	debugLog.log("GESTURE_COMMIT", data)
}

// LogGestureCancel logs an abandoned gesture.
func LogGestureCancel(mode gesture.Mode, reason string) {
	if !debugEnabled() {
		return
	}
	debugLog.log("GESTURE_CANCEL", map[string]any{
		"mode":   mode.String(),
		"reason": reason,
	})
}

// LogDuplicateSpawn logs a copy created by a duplicate gesture.
func LogDuplicateSpawn(c gesture.Commit) {
	if !debugEnabled() {
		return
	}
	debugLog.log("DUPLICATE_SPAWN", map[string]any{
		"applied": c.Applied,
		"block":   blockFields(c.Block),
	})
}

// LogPersistError logs a failed background write.
func LogPersistError(op string, err error) {
	if !debugEnabled() {
		return
	}
	debugLog.log("PERSIST_ERROR", map[string]any{
		"operation": op,
		"error":     err.Error(),
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if !debugEnabled() {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

func blockFields(b block.TimeBlock) map[string]any {
	return map[string]any{
		"id":       truncateStr(b.ID, 12),
		"schedule": truncateStr(b.ScheduleID, 12),
		"day":      b.DayIndex,
		"start":    b.Start,
		"end":      b.End,
	}
}

// truncateStr truncates a string to max length.
func truncateStr(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
