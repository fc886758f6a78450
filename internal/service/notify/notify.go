package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Sink surfaces short messages to the user. Calls must not block the
// caller for long; nobody waits on them or retries them.
type Sink interface {
	ShowError(message string)
	ShowInfo(message string)
}

// Log reports through zap.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger.Named("notify")}
}

func (l *Log) ShowError(message string) {
	l.logger.Warn(message)
}

func (l *Log) ShowInfo(message string) {
	l.logger.Info(message)
}

// Writer prints one line per message, used by the CLI.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) ShowError(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "✗ %s\n", message)
}

func (w *Writer) ShowInfo(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "• %s\n", message)
}

type Nop struct{}

func (Nop) ShowError(string) {}
func (Nop) ShowInfo(string)  {}
