package edit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"picedit/parallel"
	"picedit/pipeline"

	"github.com/alecthomas/kong"
)

type OpParams struct {
	Scan string `help:"Source folder to scan" default:"."`
	Dest string `help:"Folder for edit copies. Relative to scan dir if not absolute." default:"."`
}

type CLICmd struct {
	Apply struct {
		OpParams
		Op       []string           `help:"Transform to run, repeatable, in order (scale=1.1, rotate=-90, rotate-center=90, translate=25,0, mirror-h, mirror-v, brightness=10, contrast=1.2, grayscale, lowpass=3, gaussian)" sep:"none" group:"transform"`
		Preset   []string           `help:"Editing screen button to run after --op, repeatable (see 'presets')" sep:"none" group:"transform"`
		Quality  int                `help:"JPEG quality of edit copies" default:"90"`
		Requests []pipeline.Request `kong:"-"`
	} `cmd:"" help:"Create or reuse the edit copy of every image and apply transforms to it"`
	Reset struct {
		OpParams
	} `cmd:"" help:"Delete the edit copies"`
	Presets struct{} `cmd:"" help:"List the editing screen buttons"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var conf *OpParams
	switch kctx.Selected().Name {
	case "apply":
		conf = &c.Apply.OpParams
	case "reset":
		conf = &c.Reset.OpParams
	default:
		return nil
	}

	scanDir, err := filepath.Abs(conf.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", conf.Scan, err)
	}
	conf.Scan = scanDir

	if !filepath.IsAbs(conf.Dest) {
		conf.Dest = filepath.Join(scanDir, conf.Dest)
	}

	if kctx.Selected().Name != "apply" {
		return nil
	}

	reqs, err := pipeline.ParseAll(c.Apply.Op)
	if err != nil {
		return err
	}
	for _, label := range c.Apply.Preset {
		r, err := LookupPreset(label)
		if err != nil {
			return err
		}
		reqs = append(reqs, r)
	}
	if len(reqs) == 0 {
		return fmt.Errorf("no transforms given")
	}
	c.Apply.Requests = reqs

	if c.Apply.Quality < 1 || c.Apply.Quality > 100 {
		return fmt.Errorf("invalid JPEG quality: %d", c.Apply.Quality)
	}
	return nil
}

func (c *CLICmd) Run(kctx *kong.Context, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	switch kctx.Selected().Name {
	case "apply":
		return c.runApply(worker, wait)
	case "reset":
		return c.runReset()
	case "presets":
		for _, p := range Presets() {
			fmt.Fprintf(kctx.Stdout, "%-18s %s\n", p.Label, p.Request)
		}
	}
	return nil
}

func (c *CLICmd) runApply(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	conf := c.Apply.OpParams
	if err := os.MkdirAll(conf.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", conf.Dest, err)
	}

	files, err := os.ReadDir(conf.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", conf.Scan, err)
	}

	store := &Store{Dir: conf.Dest, Quality: c.Apply.Quality}
	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() || IsEditName(file.Name()) {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(conf.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				editPath, err := store.EditCopy(logger, filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not prepare edit copy", "error", err)
					return
				}

				if err = store.Apply(logger.With("copy", editPath), editPath, c.Apply.Requests...); err != nil {
					errCount.Add(1)
					logger.Error("could not edit image", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) runReset() error {
	conf := c.Reset.OpParams
	files, err := os.ReadDir(conf.Dest)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", conf.Dest, err)
	}

	store := &Store{Dir: conf.Dest}
	var removedCount, errCount int
	for _, file := range files {
		if file.IsDir() || !IsEditName(file.Name()) {
			continue
		}

		name := filepath.Join(conf.Dest, file.Name())
		slog.Info("deleting", "file", name)
		if err := store.Reset(name); err != nil {
			errCount++
			slog.Error("could not delete edit copy", "file", name, "error", err)
			continue
		}
		removedCount++
	}

	slog.Info("stats", "removed", removedCount, "errors", errCount)

	if errCount > 0 {
		return fmt.Errorf("error deleting %d files", errCount)
	}
	return nil
}
