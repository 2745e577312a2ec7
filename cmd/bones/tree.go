package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/bones/pkg/datastore"
)

func newTreeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Manage the directory tree page folders point into",
	}

	var parent string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a directory and print its key",
		Long: `Creates NAME below the directory --parent. Without --parent a new
repository root is created. Folders reference directories as
"<root key>/path/to/dir".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" || strings.Contains(name, "/") {
				return fmt.Errorf("invalid directory name %q", args[0])
			}

			ctx := cmd.Context()
			db, closeDB, err := a.database(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			repo := datastore.NewTreeRepository(db, treeKind)
			if parent != "" {
				ok, err := repo.NodeExists(ctx, parent)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%w: directory %q", datastore.ErrNotFound, parent)
				}
				_, found, err := repo.FindChild(ctx, parent, name)
				if err != nil {
					return err
				}
				if found {
					return fmt.Errorf("directory %q already exists", name)
				}
			}

			key, err := repo.AddNode(ctx, parent, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	add.Flags().StringVar(&parent, "parent", "", "key of the parent directory")

	cmd.AddCommand(add)
	return cmd
}
