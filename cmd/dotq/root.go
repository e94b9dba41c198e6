package main

import (
	"fmt"
	"log/slog"
	"os"

	kit "github.com/0xalexb/hjarta-kit"
	filefetcher "github.com/0xalexb/hjarta-kit/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-kit/config/parser/yaml"
	"github.com/0xalexb/hjarta-kit/dotpath"
	"github.com/0xalexb/hjarta-kit/logging"

	"github.com/spf13/cobra"
)

const appName = "dotq"

// cli carries the state shared by every command.
type cli struct {
	logLevel  string
	logFormat string

	logger *slog.Logger
	parser *yamlparser.Parser
}

func rootCmd() *cobra.Command {
	state := &cli{parser: yamlparser.NewParser()}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Query and edit YAML/JSON documents with dot paths",
		Long: `dotq reads, writes and lists values in YAML or JSON documents
addressed by dot paths such as "database.pool.max_idle".

Sequences are addressed by index ("hosts.0"). Values given on the command
line are parsed as YAML scalars, so "8080" is a number and "true" a boolean.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			state.logger = logging.NewLogger(logging.LoggerConfig{
				Level:  state.logLevel,
				Format: state.logFormat,
			}, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&state.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&state.logFormat, "log-format", logging.FormatText, "Log format (text, json)")

	cmd.AddCommand(
		getCmd(state),
		setCmd(state),
		delCmd(state),
		keysCmd(state),
		configCmd(state),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (kit: %s, compiled: %s)\n",
				appName, kit.Version, kit.KitVersion, kit.CompiledAt)
		},
	}
}

// load decodes the document at file into a container.
func (c *cli) load(file string) (dotpath.Map, error) {
	fetcher, err := filefetcher.NewFetcher(file)()
	if err != nil {
		return nil, err
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", file, err)
	}

	document, err := c.parser.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", file, err)
	}

	c.logger.Debug("document loaded", slog.String("file", file), slog.Int("keys", len(dotpath.Keys(document))))

	return document, nil
}

// write renders value to the command output.
func (c *cli) write(cmd *cobra.Command, value any) error {
	out, err := c.parser.Encode(value)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)

	return err
}

// save writes document back to file, or to the command output unless inPlace.
func (c *cli) save(cmd *cobra.Command, file string, document dotpath.Map, inPlace bool) error {
	if !inPlace {
		return c.write(cmd, document)
	}

	out, err := c.parser.Encode(document)
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(file); statErr == nil {
		mode = info.Mode().Perm()
	}

	err = os.WriteFile(file, out, mode)
	if err != nil {
		return fmt.Errorf("writing %q: %w", file, err)
	}

	c.logger.Info("document saved", slog.String("file", file))

	return nil
}
