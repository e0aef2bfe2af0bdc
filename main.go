package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/navionguy/edubasic/cli"
	"github.com/navionguy/edubasic/fileserv"
	"github.com/navionguy/edubasic/logger"
	"github.com/navionguy/edubasic/settings"
	"github.com/navionguy/edubasic/vfs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process, it returns the exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("edubasic", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		config = flags.String("config", "", "configuration file")
		listen = flags.String("listen", "", "listen address")
		dir    = flags.String("dir", "", "directory holding the programs")
		db     = flags.String("db", "", "sqlite database for program files")
		prog   = flags.String("run", "", "run this program in the terminal instead of serving")
		steps  = flags.Int("steps", 0, "most statements a program may execute, 0 for no limit")
		volume = flags.String("volume", "local", "file volume used by -run")
		screen = flags.String("screen", "", "save the graphics screen of -run as a PNG")
		size   = flags.String("size", "320x200", "graphics screen size for -run")
		ansi   = flags.Bool("ansi", false, "send ANSI color and cursor sequences with -run")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := settings.Load(*config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// flags given on the command line win over the file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Set("server", "listen", *listen)
		case "dir":
			cfg.Set("server", "programs", *dir)
		case "db":
			cfg.Set("storage", "database", *db)
		case "steps":
			cfg.Set("runtime", "step_limit", strconv.Itoa(*steps))
		}
	})
	logger.SetLevel(logger.ParseLevel(cfg.String("log", "level", "warn")))

	var store *vfs.Store
	if path := cfg.String("storage", "database", ""); len(path) > 0 {
		store, err = vfs.Open(path)
		if err != nil {
			logger.Error(logger.AreaConfig, "%s", err)
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(*prog) > 0 {
		opts := cli.Options{
			StepLimit: cfg.Int("runtime", "step_limit", 0),
			ANSI:      *ansi,
			Screen:    *screen,
		}
		if _, err := fmt.Sscanf(*size, "%dx%d", &opts.Width, &opts.Height); err != nil {
			fmt.Fprintf(stderr, "bad -size %q\n", *size)
			return 2
		}
		if store != nil {
			opts.Files = store.Volume(*volume)
		}
		if err := cli.New(stdin, stdout, stderr, opts).RunFile(ctx, *prog); err != nil {
			return 1
		}
		return 0
	}

	srv := fileserv.New(cfg.String("server", "programs", "."),
		fileserv.WithStore(store),
		fileserv.WithStepLimit(cfg.Int("runtime", "step_limit", 1000000)),
		fileserv.WithTimeout(cfg.Duration("runtime", "run_timeout", 30*time.Second)))

	addr := cfg.String("server", "listen", ":8080")
	hs := &http.Server{Addr: addr, Handler: srv}
	go func() {
		<-ctx.Done()
		hs.Close()
	}()

	logger.Info(logger.AreaServer, "listening on %q...", addr)
	if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error(logger.AreaServer, "%s", err)
		return 1
	}
	return 0
}
