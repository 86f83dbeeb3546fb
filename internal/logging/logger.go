// Package logging provides the leveled, optionally colored logger shared by
// every pipeline worker.
//
// Console output is human-oriented ("2006-01-02 15:04:05 [LEVEL] text"). The
// optional --log file receives the same events as JSON lines, each tagged with
// a run_id so that runs appended to one file can be told apart.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/jxlmigrate/internal/config"
	"github.com/backmassage/jxlmigrate/internal/term"
)

// Logger provides leveled, optionally colored logging with optional file sink.
// Lines are written whole under a mutex, so concurrent workers never interleave.
type Logger struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer

	file  *os.File
	sink  *zap.Logger // JSON file sink; nil without --log
	runID string
}

// NewLogger configures colors from cfg and optionally opens LogFile. Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{stdout: os.Stdout, stderr: os.Stderr, runID: uuid.NewString()}
	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.sink = newFileSink(f).With(zap.String("run_id", l.runID))
	}
	return l, nil
}

// newFileSink builds a JSON zap logger writing every level to w.
func newFileSink(w io.Writer) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

// NewWriterLogger returns a logger that writes every level to w, without color
// or file sink. Intended for tests and embedding.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{stdout: w, stderr: w, runID: uuid.NewString()}
}

// RunID identifies this process's run in the log file.
func (l *Logger) RunID() string { return l.runID }

// Close flushes and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	_ = l.sink.Sync()
	err := l.file.Close()
	l.file, l.sink = nil, nil
	return err
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.stdout
	if level == "ERROR" {
		out = l.stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, ts+" ["+level+"] "+text+"\n")
	}
	if l.sink != nil {
		writeSink(l.sink, level, text)
	}
}

// writeSink maps our levels onto zap's. SUCCESS has no zap equivalent and is
// recorded as info with success=true.
func writeSink(sink *zap.Logger, level, text string) {
	switch level {
	case "SUCCESS":
		sink.Info(text, zap.Bool("success", true))
	case "WARN":
		sink.Warn(text)
	case "ERROR":
		sink.Error(text)
	case "DEBUG":
		sink.Debug(text)
	default:
		sink.Info(text)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}

// Block writes a pre-rendered multi-line block (e.g. the end-of-run summary)
// to stdout without level prefixes. The file sink receives the plain lines as
// one structured event, so styling escape codes never reach the log file.
func (l *Logger) Block(styled, plain string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if styled == "" {
		styled = plain
	}
	_, _ = io.WriteString(l.stdout, styled+"\n")
	if l.sink != nil {
		l.sink.Info("block", zap.Strings("lines", strings.Split(plain, "\n")))
	}
}
