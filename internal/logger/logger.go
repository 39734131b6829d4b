package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogFileName is the file created inside the log directory
const LogFileName = "odbcprobe.log"

var (
	Info  = &Leveled{level: zerolog.InfoLevel, zlog: console(os.Stderr)}
	Error = &Leveled{level: zerolog.ErrorLevel, zlog: console(os.Stderr)}

	fileLog = zerolog.Nop()

	exit = os.Exit
)

// Leveled writes every message at one fixed level.
type Leveled struct {
	level zerolog.Level
	zlog  zerolog.Logger
}

func (l *Leveled) Println(v ...any) {
	l.zlog.WithLevel(l.level).Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (l *Leveled) Printf(format string, v ...any) {
	l.zlog.WithLevel(l.level).Msgf(format, v...)
}

// Fatalf logs at fatal level and exits with status 1.
func (l *Leveled) Fatalf(format string, v ...any) {
	l.zlog.WithLevel(zerolog.FatalLevel).Msgf(format, v...)
	exit(1)
}

// Logger returns the underlying zerolog logger
func (l *Leveled) Logger() zerolog.Logger {
	return l.zlog
}

// Init initializes the logger to write to both stdout and a file
func Init(logDir string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logFile, err := os.OpenFile(filepath.Join(logDir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	// Console gets the human format, the file keeps JSON lines
	multi := zerolog.MultiLevelWriter(consoleWriter(os.Stdout), logFile)
	zlog := zerolog.New(multi).With().Timestamp().Logger()

	Info = &Leveled{level: zerolog.InfoLevel, zlog: zlog}
	Error = &Leveled{level: zerolog.ErrorLevel, zlog: zlog}
	fileLog = zerolog.New(logFile).With().Timestamp().Logger()
	return nil
}

// File returns a logger writing only to the log file. It discards until Init succeeds.
func File() zerolog.Logger {
	return fileLog
}

// New creates a JSON logger writing to w at the given level (debug, info, warn, error).
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
}

func console(out io.Writer) zerolog.Logger {
	return zerolog.New(consoleWriter(out)).With().Timestamp().Logger()
}
