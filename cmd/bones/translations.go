package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/bones/pkg/i18n"
)

func newTranslationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translations",
		Short: "Inspect the translation tables",
	}

	var dir string
	export := &cobra.Command{
		Use:   "export LANG",
		Short: "Print the translations of a language as JSON",
		Long: `Loads the translation table and prints every key of LANG as one JSON
object. With --dir the table is read from JSON and YAML files, otherwise
from the MongoDB translations collection through the Redis snapshot cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := i18n.SetLocale(cmd.Context(), args[0])

			var adapter i18n.TranslationAdapter
			if dir != "" {
				adapter = i18n.NewDirectoryAdapter(nil, dir)
			} else {
				cached, closeAll, err := a.cachedTranslations(ctx)
				if err != nil {
					return err
				}
				defer closeAll()
				adapter = cached
			}

			tr, err := a.translator(ctx, adapter)
			if err != nil {
				return err
			}
			out, err := tr.ExportJSON(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	export.Flags().StringVar(&dir, "dir", "", "directory of translation files")

	invalidate := &cobra.Command{
		Use:   "invalidate",
		Short: "Drop the cached translation snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cached, closeAll, err := a.cachedTranslations(cmd.Context())
			if err != nil {
				return err
			}
			defer closeAll()
			if err := cached.Invalidate(cmd.Context()); err != nil {
				return err
			}
			a.log.InfoContext(cmd.Context(), "translation snapshot dropped")
			return nil
		},
	}

	cmd.AddCommand(export, invalidate)
	return cmd
}

func (a *app) translator(ctx context.Context, adapter i18n.TranslationAdapter) (*i18n.Translator, error) {
	aliases, err := a.framework.Aliases()
	if err != nil {
		return nil, err
	}
	return i18n.NewTranslator(ctx, adapter,
		i18n.WithDefaultLanguage(a.framework.DefaultLanguage),
		i18n.WithAliasMap(aliases),
		i18n.WithLogger(a.log),
	)
}
