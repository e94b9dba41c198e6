package main

import (
	"fmt"

	"github.com/0xalexb/hjarta-kit/config"
	"github.com/0xalexb/hjarta-kit/config/loader"

	"github.com/spf13/cobra"
)

// configCmd groups the commands reading layered configuration directories.
func configCmd(state *cli) *cobra.Command {
	var layers []string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read layered configuration directories",
		Long: `Read configuration sections spread over layer directories.
Section "database" lives in <layer>/database.yaml (or .yml, .json); later
--layer directories override earlier ones. Keys start with the section
name, as in "database.pool.max_idle".`,
	}

	cmd.PersistentFlags().StringArrayVarP(&layers, "layer", "l", []string{"."}, "Layer directory, lowest precedence first")

	newRegistry := func() (*loader.Loader, *config.Registry, error) {
		source, err := loader.New(state.parser, layers, loader.WithLogger(state.logger))
		if err != nil {
			return nil, nil, err
		}

		registry, err := config.NewRegistry(source, config.WithLogger(state.logger))
		if err != nil {
			return nil, nil, err
		}

		return source, registry, nil
	}

	var strict bool

	getCmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the configuration value at KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := newRegistry()
			if err != nil {
				return err
			}

			var opts []config.ReadOption
			if strict {
				opts = append(opts, config.Strict())
			}

			value, err := registry.Get(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}

			return state.write(cmd, value)
		},
	}
	getCmd.Flags().BoolVar(&strict, "strict", false, "Fail when KEY is missing")

	sectionsCmd := &cobra.Command{
		Use:   "sections",
		Short: "List the sections found across layers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, _, err := newRegistry()
			if err != nil {
				return err
			}

			sections, err := source.Sections()
			if err != nil {
				return err
			}

			for _, section := range sections {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), section)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.AddCommand(getCmd, sectionsCmd)

	return cmd
}
