package errlog

import (
	"bytes"
	"fmt"
	"os"
	"time"
)

// DefaultMaxLines bounds the error log before it is truncated.
const DefaultMaxLines = 1000

// Sink is an append-only diagnostic log with line-count-based truncation.
// It holds a single file handle for the process lifetime; the owner opens
// it once at startup and closes it on exit.
//
// Logging is best effort: Log never returns an error, since a failure on
// the diagnostic path would otherwise need its own logging.
type Sink struct {
	path     string
	maxLines int
	file     *os.File
	lines    int
}

// Open creates (if absent) and opens the log file for appending. The
// current line count is read up front so truncation decisions survive
// process restarts. maxLines <= 0 selects DefaultMaxLines.
func Open(path string, maxLines int) (*Sink, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	lines := 0
	if data, err := os.ReadFile(path); err == nil {
		lines = bytes.Count(data, []byte("\n"))
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log %s: %w", path, err)
	}

	return &Sink{
		path:     path,
		maxLines: maxLines,
		file:     file,
		lines:    lines,
	}, nil
}

// Log appends a timestamped line. Once the file holds maxLines lines it
// is truncated to empty before the next append; history past the bound is
// intentionally discarded rather than rotated. Safe on a nil sink.
func (s *Sink) Log(msg string) {
	if s == nil || s.file == nil {
		return
	}

	if s.lines >= s.maxLines {
		if err := s.file.Truncate(0); err != nil {
			return
		}
		// The handle is opened O_APPEND, so the next write lands at the
		// new end of file without a seek.
		s.lines = 0
	}

	line := fmt.Sprintf("%s: %s\n", time.Now().Format(time.RFC3339), msg)
	if _, err := s.file.WriteString(line); err != nil {
		return
	}
	s.lines++
}

// Logf formats and appends a timestamped line.
func (s *Sink) Logf(format string, args ...any) {
	s.Log(fmt.Sprintf(format, args...))
}

// Close releases the log file handle.
func (s *Sink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}
