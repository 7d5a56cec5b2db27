package history

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CSVLogger appends records to a flat comma-separated file with columns
// [timestamp, user_text, response_text, mood, gender]. The file is opened
// in append mode per write so concurrent loggers in separate processes each
// append whole rows; ordering is only guaranteed within one logger.
type CSVLogger struct {
	mu   sync.Mutex
	path string
}

// NewCSVLogger creates a CSV logger writing to path, creating the parent
// directory if needed.
func NewCSVLogger(path string) (*CSVLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	return &CSVLogger{path: path}, nil
}

// Path returns the file path the logger writes to.
func (l *CSVLogger) Path() string {
	return l.path
}

// Append writes one record as a CSV row.
func (l *CSVLogger) Append(_ context.Context, record Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening chat log: %w", err)
	}

	w := csv.NewWriter(f)
	row := []string{
		record.Timestamp.Format(TimestampFormat),
		record.UserText,
		record.ResponseText,
		record.Mood,
		record.Gender,
	}
	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("writing chat log row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing chat log: %w", err)
	}

	return f.Close()
}

var _ Logger = (*CSVLogger)(nil)
