package main

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is what the commands share: flag values resolved through viper and the logger.
type app struct {
	v   *viper.Viper
	log zerolog.Logger
}

// newRootCmd builds the command tree. Every flag can also be set through the environment,
// e.g. CENTROID_COVER_SIZE=8.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop()}
	a.v.SetEnvPrefix("CENTROID")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "centroid",
		Short:         "Centroid decomposition of trees in balanced parenthesis form",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := zerolog.ParseLevel(a.v.GetString("log-level"))
			if err != nil {
				return err
			}
			w := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: "15:04:05.000", NoColor: a.v.GetBool("no-color")}
			a.log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
			return nil
		},
	}
	root.PersistentFlags().String("log-level", "info", "trace, debug, info, warn or error")
	root.PersistentFlags().Bool("no-color", false, "plain log lines")
	_ = a.v.BindPFlags(root.PersistentFlags())

	root.AddCommand(a.decomposeCmd(), a.genCmd())
	return root
}

// bind every local flag of cmd under its own name.
func (a *app) bind(cmd *cobra.Command) *cobra.Command {
	_ = a.v.BindPFlags(cmd.Flags())
	return cmd
}
