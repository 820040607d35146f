// Package log configures the apex/log handler used by the command line tool.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "COUNTRIES_LOG"

// InitLogger sets up apex/log with Handler writing to stderr and a level
// taken from COUNTRIES_LOG.
func InitLogger() {
	level, err := log.ParseLevel(strings.ToLower(os.Getenv(LevelEnv)))
	if err != nil {
		level = log.ErrorLevel
	}
	log.SetHandler(&Handler{Writer: os.Stderr})
	log.SetLevel(level)
}

// Handler formats log entries as "timestamp level message key=value...".
type Handler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface.
func (h *Handler) HandleLog(e *log.Entry) error {
	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", timestamp.Format("2006-01-02 15:04:05"), strings.ToUpper(e.Level.String()), e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(h.Writer, b.String())
	return err
}
