package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/bones/pkg/bone"
	"github.com/dmitrymomot/bones/pkg/datastore"
	"github.com/dmitrymomot/bones/pkg/logger"
	"github.com/dmitrymomot/bones/pkg/validator"
)

// entityFlags are shared by the entities subcommands.
type entityFlags struct {
	index bool
}

func newEntitiesCmd(a *app) *cobra.Command {
	var flags entityFlags
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Store, load and query entities in MongoDB",
		Long: `Manages the entity kinds "page" and "user". Values are read from the
client the same way a form submission is: sanitized, validated and
serialized by the bones of the kind. With --index every write is mirrored
into the OpenSearch index of the kind.`,
	}
	cmd.PersistentFlags().BoolVar(&flags.index, "index", false, "keep the OpenSearch index in sync")

	var key string
	put := &cobra.Command{
		Use:   "put KIND",
		Short: "Read a JSON object from stdin and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), args[0], flags, func(ctx context.Context, store *datastore.EntityStore) error {
				data, err := readObject(cmd.InOrStdin())
				if err != nil {
					return err
				}

				sk := store.Schema().NewSkeleton()
				if key != "" {
					if sk, err = store.Get(ctx, key); err != nil {
						return err
					}
				}
				if errs := store.Schema().FromClient(ctx, sk, data); len(errs) > 0 {
					printValidationErrors(cmd.ErrOrStderr(), errs)
					return errs
				}
				if err := store.Put(ctx, sk); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sk.Key)
				return nil
			})
		},
	}
	put.Flags().StringVar(&key, "key", "", "update the entity stored under this key")

	get := &cobra.Command{
		Use:   "get KIND KEY",
		Short: "Print an entity as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), args[0], flags, func(ctx context.Context, store *datastore.EntityStore) error {
				sk, err := store.Get(ctx, args[1])
				if err != nil {
					return err
				}
				return printSkeleton(cmd.OutOrStdout(), sk)
			})
		},
	}

	query := &cobra.Command{
		Use:   "query KIND [FILTER=VALUE ...]",
		Short: "Print the entities matching the filters, one JSON object per line",
		Long: `Filters use the bone name with an optional operator suffix, for example
"price$ge=10" or "title$lk=Intro". "orderby", "orderdir" and "amount"
control sorting and the number of results.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseFilters(args[1:])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), args[0], flags, func(ctx context.Context, store *datastore.EntityStore) error {
				found, err := store.Query(ctx, raw)
				if err != nil {
					return err
				}
				for _, sk := range found {
					if err := printSkeleton(cmd.OutOrStdout(), sk); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	var limit int
	search := &cobra.Command{
		Use:   "search KIND TEXT",
		Short: "Full-text search the OpenSearch index of a kind",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := a.indexer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			keys, err := ix.Search(cmd.Context(), args[1], limit)
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), args[0], entityFlags{}, func(ctx context.Context, store *datastore.EntityStore) error {
				for _, k := range keys {
					sk, err := store.Get(ctx, k)
					if errors.Is(err, datastore.ErrNotFound) {
						a.log.WarnContext(ctx, "indexed entity is gone", logger.Key(k))
						continue
					}
					if err != nil {
						return err
					}
					if err := printSkeleton(cmd.OutOrStdout(), sk); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	search.Flags().IntVar(&limit, "limit", bone.DefaultAmount, "maximum number of results")

	del := &cobra.Command{
		Use:   "delete KIND KEY",
		Short: "Delete an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), args[0], flags, func(ctx context.Context, store *datastore.EntityStore) error {
				return store.Delete(ctx, args[1])
			})
		},
	}

	cmd.AddCommand(put, get, query, search, del)
	return cmd
}

// withStore opens the store of kind for the duration of fn.
func (a *app) withStore(ctx context.Context, kind string, flags entityFlags, fn func(context.Context, *datastore.EntityStore) error) error {
	policy, err := a.policy("", false)
	if err != nil {
		return err
	}
	db, closeDB, err := a.database(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	schema, err := a.schema(kind, datastore.NewTreeRepository(db, treeKind), policy)
	if err != nil {
		return err
	}
	opts := []datastore.StoreOption{datastore.WithStoreLogger(a.log)}
	if flags.index {
		ix, err := a.indexer(ctx, kind)
		if err != nil {
			return err
		}
		opts = append(opts, datastore.WithIndexer(ix))
	}
	return fn(ctx, datastore.NewEntityStore(db, schema, opts...))
}

func readObject(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("read entity: %w", err)
	}
	return data, nil
}

// parseFilters turns "name=value" arguments into query parameters.
func parseFilters(args []string) (map[string]any, error) {
	raw := make(map[string]any, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter %q, want NAME=VALUE", arg)
		}
		raw[k] = v
	}
	return raw, nil
}

func printSkeleton(w io.Writer, sk *bone.Skeleton) error {
	out := make(map[string]any, len(sk.Values)+1)
	for k, v := range sk.Values {
		out[k] = v
	}
	out["key"] = sk.Key
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printValidationErrors(w io.Writer, errs validator.ValidationErrors) {
	for _, field := range errs.Fields() {
		fmt.Fprintf(w, "%s: %s\n", field, strings.Join(errs.Get(field), "; "))
	}
}
