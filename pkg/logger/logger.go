package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
}

var levelColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgHiBlack),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
	LevelFatal: color.New(color.FgRed, color.Bold),
}

// ParseLevel парсит уровень из строки конфигурации (по умолчанию INFO)
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Logger логгер с printf-style API
// Пишет в stdout (с цветными уровнями) и, опционально, в файл (без цвета)
type Logger struct {
	mu      sync.Mutex
	level   Level
	console *log.Logger
	file    *log.Logger
	closer  io.Closer
	exit    func(int)
}

// New создает логгер. Пустой filePath - только stdout
func New(filePath string, level string) (*Logger, error) {
	l := &Logger{
		level:   ParseLevel(level),
		console: log.New(os.Stdout, "", log.LstdFlags),
		exit:    os.Exit,
	}

	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		l.file = log.New(f, "", log.LstdFlags)
		l.closer = f
	}

	return l, nil
}

// NewWithWriter создает логгер поверх произвольного writer (без цвета)
func NewWithWriter(w io.Writer, level string) *Logger {
	return &Logger{
		level:   ParseLevel(level),
		console: log.New(w, "", 0),
		exit:    os.Exit,
	}
}

// Close закрывает файл лога
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) Debug(format string, v ...interface{}) { l.write(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.write(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.write(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.write(LevelError, format, v...) }

// Fatal логирует и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.write(LevelFatal, format, v...)
	l.exit(1)
}

func (l *Logger) write(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, v...)
	name := levelNames[level]

	l.mu.Lock()
	defer l.mu.Unlock()

	tag := "[" + name + "]"
	if c, ok := levelColors[level]; ok {
		tag = c.Sprint(tag)
	}
	l.console.Printf("%s %s", tag, msg)

	if l.file != nil {
		l.file.Printf("[%s] %s", name, msg)
	}
}
