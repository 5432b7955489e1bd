package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger provides leveled logging with redaction support
type Logger struct {
	debug   bool
	noColor bool
	fields  []string

	mu  *sync.Mutex
	out io.Writer
}

// New creates a new logger instance writing to stderr
func New(debug, noColor bool) *Logger {
	return &Logger{
		debug:   debug,
		noColor: noColor,
		mu:      &sync.Mutex{},
		out:     os.Stderr,
	}
}

// SetOutput redirects the logger. Loggers created afterwards with With inherit it.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// DebugEnabled reports whether Debug messages are written
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

// With returns a logger that appends key=value pairs to every message.
// Values are formatted with %v, so Secret values stay redacted.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	child := *l
	child.fields = append(append([]string(nil), l.fields...), formatFields(keyvals)...)
	return &child
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.write("\033[32m✓\033[0m", "✓", format, args)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write("\033[33m⚠\033[0m", "⚠", format, args)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.write("\033[31m✗\033[0m", "✗", format, args)
}

// Debug logs a debug message if debug mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.write("\033[36m[DEBUG]\033[0m", "[DEBUG]", format, args)
}

func (l *Logger) write(colored, plain, format string, args []interface{}) {
	msg := fmt.Sprintf(format, args...)
	if len(l.fields) > 0 {
		msg += " " + strings.Join(l.fields, " ")
	}

	prefix := colored
	if l.noColor {
		prefix = plain
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", prefix, msg)
}

func formatFields(keyvals []interface{}) []string {
	out := make([]string, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if i+1 >= len(keyvals) {
			out = append(out, key+"=<missing>")
			break
		}
		out = append(out, fmt.Sprintf("%s=%v", key, quoteIfNeeded(keyvals[i+1])))
	}
	return out
}

func quoteIfNeeded(v interface{}) interface{} {
	if s, ok := v.(string); ok && (s == "" || strings.ContainsAny(s, " \t\"=")) {
		return fmt.Sprintf("%q", s)
	}
	return v
}

// Secret represents a value that should be redacted in logs
type Secret string

// String implements the Stringer interface, always returning a redacted value
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements the GoStringer interface for %#v formatting
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// Redact replaces sensitive values in a string with [REDACTED]
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if secret != "" && len(secret) > 3 { // Only redact non-trivial secrets
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}
