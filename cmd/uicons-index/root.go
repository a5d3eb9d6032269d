package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uicons-index/internal/config"
	"uicons-index/internal/indexer"
)

// app carries state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newApp() *app {
	return &app{v: config.NewViper()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "uicons-index",
		Short: "Write index.json manifests for an icon asset tree",
		Long: `uicons-index walks an icon tree and writes an index.json into every directory.

A directory with subdirectories gets an object mapping each subdirectory name
to that subdirectory's manifest. Any other directory gets an array of its .png
filenames. Names without a "." are treated as subdirectories.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.FileName+".yaml if present)")
	root.PersistentFlags().String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newIndexCmd(a, "create", indexer.ModeSorted,
			"Index with leaves sorted naturally (icon2.png before icon10.png)"),
		newIndexCmd(a, "update", indexer.ModeUnsorted,
			"Index with leaves in directory listing order"),
		newVerifyCmd(a),
	)
	return root
}

func newLogger(w io.Writer, lvl log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "uicons-index",
		Level:  lvl,
	})
}
