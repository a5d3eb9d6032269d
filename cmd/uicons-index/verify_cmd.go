package main

import (
	"github.com/spf13/cobra"

	"uicons-index/internal/config"
	"uicons-index/internal/indexer"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [dir]",
		Short: "Check that published index.json files are well-formed and consistent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if err := indexer.Verify(root); err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			newLogger(cmd.ErrOrStderr(), cfg.Level()).Info("index tree verified", "root", root)
			return nil
		},
	}
}
