package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/abelbrown/hnbar/internal/config"
	"github.com/abelbrown/hnbar/internal/controller"
	"github.com/abelbrown/hnbar/internal/coord"
	"github.com/abelbrown/hnbar/internal/hn"
	"github.com/abelbrown/hnbar/internal/logging"
	"github.com/abelbrown/hnbar/internal/otel"
	"github.com/abelbrown/hnbar/internal/shell"
	"github.com/abelbrown/hnbar/internal/state"
	"github.com/abelbrown/hnbar/internal/store"
	"github.com/abelbrown/hnbar/internal/ui"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hnbar: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags config.Flags
	fs := pflag.NewFlagSet("hnbar", pflag.ContinueOnError)
	flags.Register(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.Version {
		fmt.Println("hnbar", version)
		return nil
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	cfg.Apply(flags, fs)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}
	if flags.Trace {
		otel.SetTraceEnabled(true)
	}

	if err := logging.Init(cfg.LogDir(), cfg.LogLevel); err != nil {
		return err
	}
	defer logging.Close()
	logging.Logger.Info("hnbar started", "version", version, "data_dir", cfg.DataDir)

	journal, err := otel.OpenFile(cfg.JournalPath())
	if err != nil {
		return err
	}
	defer journal.Close()
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	journal.SetRingBuffer(ring)
	journal.Info(otel.KindStartup, "main", version)
	defer journal.Info(otel.KindShutdown, "main", "")

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer st.Close()

	hydrate, err := controller.LoadHydrate(st)
	if err != nil {
		return err
	}
	initial := state.DefaultFilter()
	initial.ScoreLimit = cfg.ScoreLimit
	if hydrate.Filter == nil {
		hydrate.Filter = &initial
	} else if fs.Changed("score-limit") {
		hydrate.Filter.ScoreLimit = cfg.ScoreLimit
	}

	client := hn.NewClient(hn.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		MaxConcurrent:     cfg.API.MaxConcurrent,
		UserAgent:         "hnbar/" + version,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := controller.New(ctx, state.New(initial), client, st,
		logging.WithPrefix("controller"), journal,
		controller.Options{PageSize: cfg.PageSize, FetchTimeout: cfg.API.Timeout + 5*time.Second})

	app := ui.NewApp(ctrl, shell.NewOpener(cfg.Browser), ui.Options{
		Hydrate: hydrate,
		Ring:    ring,
		Journal: journal,
	})

	opts := []tea.ProgramOption{tea.WithMouseCellMotion(), tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(app, opts...)

	coordinator := coord.New(st, logging.WithPrefix("coord"), journal, coord.Options{
		RefreshInterval: cfg.RefreshInterval,
		Retention:       cfg.ReadRetention,
	})
	coordinator.Start(ctx, program)

	_, runErr := program.Run()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		logging.Logger.Error("program exited", "err", runErr)
		journal.Error(otel.KindError, "main", runErr)
	} else {
		runErr = nil
	}

	cancel()
	coordinator.Wait()
	return runErr
}
