// Package artifact emits the two files a commit-producing run leaves
// behind: one appended line in the decision log and a fully rewritten
// commit message file for the orchestrator's git step.
package artifact

import (
	"fmt"
	"os"
	"time"

	"github.com/roach88/dicecommit/internal/config"
	"github.com/roach88/dicecommit/internal/engine"
)

// Result reports what a Write call touched.
type Result struct {
	// Committed mirrors the decision outcome. False means no file was
	// opened at all.
	Committed bool `json:"committed"`

	// LogPath and MessagePath are set only when Committed is true.
	LogPath     string `json:"log_path,omitempty"`
	MessagePath string `json:"message_path,omitempty"`
}

// Writer appends log entries and rewrites the commit message file.
type Writer struct {
	logPath     string
	messagePath string
}

// NewWriter returns a writer bound to the configured paths.
func NewWriter(cfg config.Config) *Writer {
	return &Writer{logPath: cfg.LogPath, messagePath: cfg.MessagePath}
}

// Write materializes the decision's artifacts.
//
// Skip decisions perform no I/O. Commit decisions append one log entry
// (single open-for-append and a single write call, never a
// read-modify-write) and rewrite the message file from a buffer built
// entirely in memory, so an interrupted run leaves either the complete
// artifact or the prior state, not a half-written one.
//
// Any I/O error is operational: propagated to the caller, never retried
// here.
func (w *Writer) Write(d engine.Decision, now time.Time) (Result, error) {
	if !d.Commit {
		return Result{Committed: false}, nil
	}

	entry := FormatLogEntry(d, now)
	if err := appendLine(w.logPath, entry); err != nil {
		return Result{}, fmt.Errorf("append log entry: %w", err)
	}

	message := FormatMessage(d, now)
	if err := os.WriteFile(w.messagePath, []byte(message), 0o644); err != nil {
		return Result{}, fmt.Errorf("write commit message: %w", err)
	}

	return Result{
		Committed:   true,
		LogPath:     w.logPath,
		MessagePath: w.messagePath,
	}, nil
}

// appendLine appends one already-terminated line to path in a single
// write. O_APPEND keeps prior entries intact if the process dies
// mid-run; at the line level interleaving cannot corrupt earlier data.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
