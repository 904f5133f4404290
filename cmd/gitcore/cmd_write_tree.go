package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitcore/cmd/ui"
)

func newWriteTreeCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write-tree [dir]",
		Short: "Snapshot a directory into tree objects",
		Long: `Store every file under dir as a blob and every non-empty directory as a tree,
then print the name of the root tree. Ignored names (core.ignore) are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.findRepository(cmd.Context())
			if err != nil {
				return err
			}

			dir := repo.WorkingDirectory().String()
			if len(args) > 0 {
				if dir, err = flags.resolvePath(args[0]); err != nil {
					return err
				}
			}

			hash, ok, err := repo.BuildTree(cmd.Context(), dir)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(),
					ui.WarningMessage(fmt.Sprintf("nothing to snapshot: %s has no files to store", dir)))
				return &exitError{code: 1}
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	return cmd
}
