package dlog

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/robfig/cron/v3"
	slogmulti "github.com/samber/slog-multi"
)

// Log is the package logger. Until Setup is called it writes plain text to
// stderr so tests and early init still produce output.
var Log = slog.New(slog.NewTextHandler(os.Stderr, nil))

var setupOnce sync.Once

type Config struct {
	Level       string
	Dir         string
	ArchiveCron string
}

func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

// Setup replaces Log with a fanout logger: a colored pretty handler on
// stdout and a JSON handler appending to <dir>/gateway.json. The JSON file
// is rotated by an Archiver on the given cron schedule.
func Setup(cfg Config) {
	setupOnce.Do(func() {
		if cfg.Dir == "" {
			cfg.Dir = "logs"
		}
		if err := os.MkdirAll(cfg.Dir, os.ModePerm); err != nil {
			panic(err)
		}

		opts := &slog.HandlerOptions{
			AddSource: true,
			Level:     parseLevel(cfg.Level),
		}

		rotating, err := openRotatingFile(filepath.Join(cfg.Dir, "gateway.json"))
		if err != nil {
			panic(err)
		}

		Log = slog.New(slogmulti.Fanout(
			NewPrettyHandler(os.Stdout, opts),
			slog.NewJSONHandler(rotating, opts),
		))

		schedule := cfg.ArchiveCron
		if schedule == "" {
			schedule = "@daily"
		}
		c := cron.New()
		entryID, err := c.AddFunc(schedule, func() {
			archiver := &Archiver{File: rotating, Dir: cfg.Dir}
			archiver.Process()
		})
		if err != nil {
			panic(err)
		}
		c.Start()
		Info("Created archive cron", "entryID", entryID, "schedule", schedule)
	})
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
