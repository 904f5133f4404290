package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitcore/pkg/repository/refs"
)

func newUpdateRefCmd(flags *globalFlags) *cobra.Command {
	var deleteRef bool

	cmd := &cobra.Command{
		Use:   "update-ref <ref> [<object>]",
		Short: "Point a reference at a stored object",
		Long: `Point a reference such as refs/heads/master at a stored object.
Updating HEAD updates the branch HEAD names. With -d the reference is removed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.findRepository(cmd.Context())
			if err != nil {
				return err
			}

			ref := refs.RefPath(args[0])
			if deleteRef {
				if len(args) != 1 {
					return fmt.Errorf("-d takes only a reference name")
				}
				deleted, err := repo.Refs().DeleteRef(ref)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("reference %s does not exist", ref)
				}
				return nil
			}

			if len(args) != 2 {
				return fmt.Errorf("update-ref needs a reference and an object")
			}
			hash, err := resolveName(repo, args[1])
			if err != nil {
				return err
			}
			return repo.UpdateRef(ref, hash)
		},
	}

	cmd.Flags().BoolVarP(&deleteRef, "delete", "d", false, "Delete the reference")

	return cmd
}

func newRevParseCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rev-parse <name>...",
		Short: "Print the object name a reference resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.findRepository(cmd.Context())
			if err != nil {
				return err
			}

			for _, arg := range args {
				hash, err := resolveName(repo, arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
			}
			return nil
		},
	}
}
