package main

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-kit/dotpath"

	"github.com/spf13/cobra"
)

func getCmd(state *cli) *cobra.Command {
	var (
		fallback string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "get FILE PATH",
		Short: "Print the value at PATH",
		Long: `Print the value at PATH as YAML. The empty path prints the whole document.
A missing path prints the --default value (null when unset) or fails with --strict.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // FILE and PATH
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := state.load(args[0])
			if err != nil {
				return err
			}

			value, found := dotpath.Lookup(document, args[1])
			if found {
				return state.write(cmd, value)
			}

			if strict {
				return fmt.Errorf("%w: %q", dotpath.ErrMissingPath, args[1])
			}

			var def any

			if cmd.Flags().Changed("default") {
				def, err = state.parser.DecodeValue([]byte(fallback))
				if err != nil {
					return fmt.Errorf("parsing default: %w", err)
				}
			}

			return state.write(cmd, def)
		},
	}

	cmd.Flags().StringVar(&fallback, "default", "", "Value printed when PATH is missing")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when PATH is missing")

	return cmd
}

func setCmd(state *cli) *cobra.Command {
	var inPlace bool

	cmd := &cobra.Command{
		Use:   "set FILE PATH VALUE",
		Short: "Store VALUE at PATH",
		Long: `Store VALUE at PATH, creating intermediate mappings as needed.
The updated document is printed unless --in-place rewrites FILE.`,
		Args: cobra.ExactArgs(3), //nolint:mnd // FILE, PATH and VALUE
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := state.load(args[0])
			if err != nil {
				return err
			}

			value, err := state.parser.DecodeValue([]byte(args[2]))
			if err != nil {
				return fmt.Errorf("parsing value: %w", err)
			}

			if args[1] == "" {
				return fmt.Errorf("set: %w", dotpath.ErrEmptyPath)
			}

			err = dotpath.Set(document, args[1], value)
			if err != nil {
				return err
			}

			return state.save(cmd, args[0], document, inPlace)
		},
	}

	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "Rewrite FILE instead of printing")

	return cmd
}

func delCmd(state *cli) *cobra.Command {
	var inPlace bool

	cmd := &cobra.Command{
		Use:     "del FILE PATH",
		Aliases: []string{"rm"},
		Short:   "Remove the value at PATH",
		Args:    cobra.ExactArgs(2), //nolint:mnd // FILE and PATH
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := state.load(args[0])
			if err != nil {
				return err
			}

			if !dotpath.Remove(document, args[1]) {
				state.logger.Warn("nothing to remove", slog.String("path", args[1]))
			}

			return state.save(cmd, args[0], document, inPlace)
		},
	}

	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "Rewrite FILE instead of printing")

	return cmd
}

func keysCmd(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "keys FILE [PATH]",
		Short: "List the leaf paths below PATH",
		Args:  cobra.RangeArgs(1, 2), //nolint:mnd // FILE and optional PATH
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := state.load(args[0])
			if err != nil {
				return err
			}

			prefix := ""
			if len(args) > 1 {
				prefix = args[1]
			}

			value, found := dotpath.Lookup(document, prefix)
			if !found {
				return fmt.Errorf("%w: %q", dotpath.ErrMissingPath, prefix)
			}

			subtree, isMap := value.(dotpath.Map)
			if !isMap {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), prefix)

				return err
			}

			for _, key := range dotpath.Keys(subtree) {
				if prefix != "" {
					key = dotpath.Join(prefix, key)
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}
