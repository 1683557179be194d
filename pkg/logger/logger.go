package logx

import (
	"io"
	"os"

	"github.com/Chative-core-poc-v1/bookseller/internal/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var DefaultLoggerOpts = &LoggerOpts{
	Environment: core.Development,
}

type LoggerOpts struct {
	Environment core.Environment
	// File, when set, tees every event into a size-rotated log file.
	File FileOpts
}

type FileOpts struct {
	Path       string `envconfig:"LOG_FILE"`
	MaxSizeMB  int    `envconfig:"LOG_FILE_MAX_SIZE_MB" default:"100"`
	MaxAgeDays int    `envconfig:"LOG_FILE_MAX_AGE_DAYS" default:"7"`
	MaxBackups int    `envconfig:"LOG_FILE_MAX_BACKUPS" default:"3"`
}

func safe(otps ...LoggerOpts) *LoggerOpts {
	if len(otps) == 0 {
		return DefaultLoggerOpts
	}
	return &otps[0]
}

func Init(otps ...LoggerOpts) {
	opts := safe(otps...)

	var console io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if !opts.Environment.IsProduction() {
		console = zerolog.NewConsoleWriter()
		level = zerolog.DebugLevel
	}

	out := console
	if opts.File.Path != "" {
		out = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSizeMB,
			MaxAge:     opts.File.MaxAgeDays,
			MaxBackups: opts.File.MaxBackups,
			LocalTime:  true,
			Compress:   true,
		})
	}

	ctx := zerolog.New(out).With().Timestamp()
	if !opts.Environment.IsProduction() {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger().Level(level)
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Panic() *zerolog.Event {
	return log.Panic()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
