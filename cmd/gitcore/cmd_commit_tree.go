package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitcore/pkg/objects"
)

func newCommitTreeCmd(flags *globalFlags) *cobra.Command {
	var parent, message string

	cmd := &cobra.Command{
		Use:   "commit-tree <tree> [-p <parent>] -m <message>",
		Short: "Create a commit object for a tree",
		Long: `Create a commit of the given tree and print its name.
Author and committer come from user.name, user.email and user.timezone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.findRepository(cmd.Context())
			if err != nil {
				return err
			}

			treeHash, err := resolveName(repo, args[0])
			if err != nil {
				return err
			}

			var parentHash *objects.ObjectHash
			if parent != "" {
				h, err := resolveName(repo, parent)
				if err != nil {
					return err
				}
				parentHash = &h
			}

			hash, err := repo.BuildCommit(cmd.Context(), treeHash, parentHash, message)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent commit")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.MarkFlagRequired("message")

	return cmd
}
