package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitcore/cmd/ui"
	"github.com/utkarsh5026/gitcore/pkg/repository/scpath"
	"github.com/utkarsh5026/gitcore/pkg/repository/sourcerepo"
)

func newInitCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Long: `Create an empty repository in the current directory or the given path.
This creates a .source directory holding the object store.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := flags.resolvePath(path)
			if err != nil {
				return err
			}

			repoPath, err := scpath.NewRepositoryPath(absPath)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			opts, err := flags.repoOptions()
			if err != nil {
				return err
			}

			repo, err := sourcerepo.Initialize(cmd.Context(), repoPath, opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize repository: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				ui.SuccessMessage("Initialized empty gitcore repository in", repo.SourceDirectory().String()))
			return nil
		},
	}

	return cmd
}
