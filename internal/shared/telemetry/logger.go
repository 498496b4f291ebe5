package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

var verbose atomic.Bool

// SetVerbose enables debug-level output.
func SetVerbose(on bool) {
	verbose.Store(on)
}

// Debug writes a debug-level log line; suppressed unless verbose is enabled.
func Debug(msg string, fields map[string]any) {
	if !verbose.Load() {
		return
	}
	write("debug", msg, fields)
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write("warn", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

func write(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg
	for k, v := range fields {
		entry[k] = v
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n", time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(os.Stderr, string(data))
}
