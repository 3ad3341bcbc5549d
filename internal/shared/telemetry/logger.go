// Package telemetry emits one JSON object per log line: caller fields
// plus a timestamp, level, and message, written under a mutex so
// concurrent scoring workers never interleave partial lines.
package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	sink io.Writer = os.Stdout
)

// SetOutput redirects log lines and returns the previous sink. Tests use
// it to capture output.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := sink
	sink = w
	return prev
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

func write(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	// Reserved keys win over caller fields.
	entry["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"ts":%q,"level":"error","msg":"log entry not serializable","cause":%q}`,
			time.Now().UTC().Format(time.RFC3339Nano), err.Error()))
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(sink, string(data))
}
