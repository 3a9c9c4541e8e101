package main

import (
	"io"
	"log/slog"
	"os"

	"picedit/edit"
	"picedit/parallel"

	"github.com/alecthomas/kong"
)

type CLI struct {
	LogLevel  slog.Level  `help:"Minimum log level (debug, info, warn, error)" default:"info"`
	LogFormat string      `help:"Log output format" enum:"text,json" default:"text"`
	Workers   int         `help:"Number of images processed in parallel, 0 for one per CPU" default:"0"`
	Edit      edit.CLICmd `cmd:"" help:"Work on the edit copies of a folder of images"`
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("picedit"),
		kong.Description("Scale, rotate, mirror, tone and blur images through their _edit copies."),
		kong.UsageOnError(),
	)

	slog.SetDefault(newLogger(os.Stderr, cli.LogFormat, cli.LogLevel))

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool.Do, pool.Wait)
	pool.Wait(true)
	kctx.FatalIfErrorf(err)
}
