package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/objects/blob"
)

func newHashObjectCmd(flags *globalFlags) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object [-w] <file>...",
		Short: "Compute the blob name of files and optionally store them",
		Long: `Compute the object name of each file as a blob.
With -w the blob is also written to the object store, which requires a repository.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashFile := dryRunHash
			if write {
				repo, err := flags.findRepository(cmd.Context())
				if err != nil {
					return err
				}
				hashFile = repo.WriteBlob
			}

			for _, arg := range args {
				path, err := flags.resolvePath(arg)
				if err != nil {
					return err
				}
				hash, err := hashFile(path)
				if err != nil {
					return fmt.Errorf("hash %s: %w", arg, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the blob into the object store")

	return cmd
}

// dryRunHash hashes a file as a blob without a repository.
func dryRunHash(path string) (objects.ObjectHash, error) {
	obj, err := blob.Open(afero.NewOsFs(), path)
	if err != nil {
		return objects.ZeroHash, err
	}
	defer obj.Close()

	return obj.Hash()
}
