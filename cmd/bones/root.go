package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/bones/pkg/config"
	"github.com/dmitrymomot/bones/pkg/i18n"
	"github.com/dmitrymomot/bones/pkg/logger"
)

// app carries what every subcommand needs once the root command has
// loaded the environment.
type app struct {
	framework config.Framework
	log       *slog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		envFiles  []string
		logLevel  string
		logFormat string
	)
	a := &app{log: logger.Discard()}

	root := &cobra.Command{
		Use:          "bones",
		Short:        "Sanitize markup and manage the services behind bones entities",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) > 0 {
				if err := config.LoadEnv(envFiles...); err != nil {
					return err
				}
			}
			if err := config.Load(&a.framework); err != nil {
				return err
			}
			format := logger.Format(logFormat)
			if format != logger.FormatJSON && format != logger.FormatText {
				return fmt.Errorf("invalid --log-format %q", logFormat)
			}
			a.log = logger.New(
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithLevelName(logLevel),
				logger.WithFormat(format),
				logger.WithAttr(logger.Component(cmd.Name())),
				logger.WithContextExtractors(localeExtractor),
			)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&envFiles, "env-file", nil, "load variables from .env files before reading the configuration")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&logFormat, "log-format", string(logger.FormatText), "log format: text or json")

	root.AddCommand(
		newSanitizeCmd(a),
		newTranslationsCmd(a),
		newHealthCmd(a),
		newEntitiesCmd(a),
		newTreeCmd(a),
	)
	return root
}

// localeExtractor logs the language stored with i18n.SetLocale.
func localeExtractor(ctx context.Context) (slog.Attr, bool) {
	lang, ok := i18n.LocaleFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.Language(lang), true
}
