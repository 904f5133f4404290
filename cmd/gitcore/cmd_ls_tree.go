package main

import (
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitcore/cmd/ui"
	"github.com/utkarsh5026/gitcore/pkg/objects"
)

func newLsTreeCmd(flags *globalFlags) *cobra.Command {
	var nameOnly, asTable bool

	cmd := &cobra.Command{
		Use:   "ls-tree [--name-only | --table] <tree-ish>",
		Short: "List the entries of a tree object",
		Long: `List the entries of a tree object in stored order.
A commit name lists the commit's tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.findRepository(cmd.Context())
			if err != nil {
				return err
			}

			hash, err := resolveName(repo, args[0])
			if err != nil {
				return err
			}

			kind, _, err := repo.ObjectStore().ReadHeader(hash)
			if err != nil {
				return err
			}
			if kind == objects.CommitKind {
				c, err := repo.ReadCommit(cmd.Context(), hash)
				if err != nil {
					return err
				}
				hash = c.TreeHash
			}

			t, err := repo.ReadTree(hash)
			if err != nil {
				return err
			}

			if asTable {
				return ui.RenderTreeTable(cmd.OutOrStdout(), t.Entries())
			}
			writeTreeLines(cmd.OutOrStdout(), t.Entries(), nameOnly)
			return nil
		},
	}

	cmd.Flags().BoolVar(&nameOnly, "name-only", false, "List only entry names")
	cmd.Flags().BoolVar(&asTable, "table", false, "Render the listing as a table")
	cmd.MarkFlagsMutuallyExclusive("name-only", "table")

	return cmd
}
