package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitcore/cmd/ui"
	"github.com/utkarsh5026/gitcore/pkg/config"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write repository or user configuration",
		Long: `Read and write configuration.
Values resolve command-line > repository (.source/config.toml) > user (~/.config/gitcore/config.toml) > builtin.`,
	}

	cmd.AddCommand(newConfigGetCmd(flags, false))
	cmd.AddCommand(newConfigGetCmd(flags, true))
	cmd.AddCommand(newConfigWriteCmd(flags, "set"))
	cmd.AddCommand(newConfigWriteCmd(flags, "add"))
	cmd.AddCommand(newConfigUnsetCmd(flags))
	cmd.AddCommand(newConfigListCmd(flags))

	return cmd
}

func newConfigGetCmd(flags *globalFlags, all bool) *cobra.Command {
	use, short := "get <key>", "Print the effective value of a key"
	if all {
		use, short = "get-all <key>", "Print every effective value of a multi-valued key"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.findRepository(cmd.Context())
			if err != nil {
				return err
			}

			entries := repo.Config().GetAll(args[0])
			if len(entries) == 0 {
				return &exitError{code: 1}
			}
			if !all {
				entries = entries[len(entries)-1:]
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e.Value)
			}
			return nil
		},
	}
}

func newConfigWriteCmd(flags *globalFlags, op string) *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   op + " [--user] <key> <value>",
		Short: "Replace the value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.findRepository(cmd.Context())
			if err != nil {
				return err
			}

			level := writeLevel(user)
			if op == "add" {
				err = repo.Config().Add(args[0], args[1], level)
			} else {
				err = repo.Config().Set(args[0], args[1], level)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage(fmt.Sprintf("%s %s", args[0], op), level.String()))
			return nil
		},
	}
	if op == "add" {
		cmd.Short = "Append a value to a multi-valued key"
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level file instead of the repository file")

	return cmd
}

func newConfigUnsetCmd(flags *globalFlags) *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   "unset [--user] <key>",
		Short: "Remove a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.findRepository(cmd.Context())
			if err != nil {
				return err
			}

			return repo.Config().Unset(args[0], writeLevel(user))
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level file instead of the repository file")

	return cmd
}

func newConfigListCmd(flags *globalFlags) *cobra.Command {
	var asTOML bool
	var levelName string

	cmd := &cobra.Command{
		Use:   "list [--toml] [--level <level>]",
		Short: "List the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.findRepository(cmd.Context())
			if err != nil {
				return err
			}
			manager := repo.Config()
			out := cmd.OutOrStdout()

			if asTOML {
				var level *config.ConfigLevel
				if levelName != "" {
					l, err := config.ParseLevel(levelName)
					if err != nil {
						return err
					}
					level = &l
				}
				doc, err := manager.ExportTOML(level)
				if err != nil {
					return err
				}
				fmt.Fprint(out, doc)
				return nil
			}

			var rows []ui.ConfigRow
			for _, e := range manager.List() {
				if levelName != "" && e.Level.String() != levelName {
					continue
				}
				rows = append(rows, ui.ConfigRow{
					Key:    e.Key,
					Value:  e.Value,
					Level:  e.Level.String(),
					Source: e.Source.String(),
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, ui.InfoMessage(fmt.Sprintf("no configuration entries at level %s", levelName)))
				return nil
			}
			return ui.RenderConfigTable(out, rows)
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "Print a TOML document instead of a table")
	cmd.Flags().StringVar(&levelName, "level", "", "Restrict to one level (command-line, repository, user, builtin)")

	return cmd
}

func writeLevel(user bool) config.ConfigLevel {
	if user {
		return config.UserLevel
	}
	return config.RepositoryLevel
}
