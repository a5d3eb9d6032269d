package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"uicons-index/internal/config"
	"uicons-index/internal/indexer"
	"uicons-index/internal/indexfile"
	"uicons-index/internal/manifest"
	"uicons-index/internal/watch"
)

func newIndexCmd(a *app, use string, mode indexer.Mode, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [dir]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runIndex(cmd, args, mode)
		},
	}
	f := cmd.Flags()
	f.IntP(config.KeyJobs, "j", 0, "max concurrent directory operations (0 = number of CPUs)")
	f.Bool("dry-run", false, "compute manifests and print the root manifest without writing")
	f.Bool("check", false, "exit 1 if any index.json is missing or out of date; writes nothing")
	f.Bool("watch", false, "keep running and re-index when files change")
	f.Duration(config.KeyDebounce, watch.DefaultDebounce, "quiet period before re-indexing in --watch mode")
	return cmd
}

func (a *app) runIndex(cmd *cobra.Command, args []string, mode indexer.Mode) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	root := cfg.Root
	if len(args) == 1 {
		root = args[0]
	}

	flags := cmd.Flags()
	dryRun, _ := flags.GetBool("dry-run")
	check, _ := flags.GetBool("check")
	watchMode, _ := flags.GetBool("watch")
	if check && (dryRun || watchMode) {
		return &ExitError{Code: 2, Err: errors.New("--check cannot be combined with --dry-run or --watch")}
	}
	if dryRun && watchMode {
		return &ExitError{Code: 2, Err: errors.New("--dry-run cannot be combined with --watch")}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Level())
	ix := indexer.New(indexer.Options{
		Mode:   mode,
		Jobs:   cfg.Jobs,
		DryRun: dryRun,
		Logger: logger,
	})

	if check {
		return runCheck(ctx, cmd.OutOrStdout(), logger, ix, root)
	}
	m, err := runOnce(ctx, logger, ix, root)
	if err != nil {
		return err
	}
	if dryRun {
		return printManifest(cmd.OutOrStdout(), m)
	}
	if watchMode {
		return runWatch(ctx, logger, ix, root, cfg.Debounce)
	}
	return nil
}

func runOnce(ctx context.Context, logger *log.Logger, ix *indexer.Indexer, root string) (manifest.Manifest, error) {
	start := time.Now()
	m, err := ix.Index(ctx, root)
	if err != nil {
		return manifest.Manifest{}, err
	}
	st := ix.Stats()
	logger.Info("index complete",
		"root", root,
		"mode", ix.Options().Mode,
		"dirs", st.Dirs,
		"images", st.Images,
		"written", st.Written,
		"took", time.Since(start).Round(time.Millisecond),
	)
	return m, nil
}

func runCheck(ctx context.Context, out io.Writer, logger *log.Logger, ix *indexer.Indexer, root string) error {
	drifts, err := ix.Check(ctx, root)
	if err != nil {
		return err
	}
	if len(drifts) == 0 {
		logger.Info("all index files up to date", "root", root)
		return nil
	}
	for _, d := range drifts {
		if d.Missing {
			fmt.Fprintf(out, "missing: %s\n", d.Path)
		} else {
			fmt.Fprintf(out, "stale: %s\n", d.Path)
		}
		fmt.Fprint(out, d.Diff)
	}
	return &ExitError{Code: 1, Err: fmt.Errorf("%d index.json file(s) out of date", len(drifts))}
}

func runWatch(ctx context.Context, logger *log.Logger, ix *indexer.Indexer, root string, debounce time.Duration) error {
	w, err := watch.New(watch.Config{
		BaseDir:  root,
		Debounce: debounce,
		Logger:   logger,
		OnChange: func(ctx context.Context, changed []string) error {
			logger.Info("re-indexing", "changed", len(changed))
			_, err := runOnce(ctx, logger, ix, root)
			return err
		},
	})
	if err != nil {
		return err
	}
	logger.Info("watching for changes", "root", root)
	return w.Run(ctx)
}

func printManifest(out io.Writer, m manifest.Manifest) error {
	data, err := indexfile.Encode(m)
	if err != nil {
		return err
	}
	_, err = out.Write(indexfile.Pretty(data))
	return err
}
