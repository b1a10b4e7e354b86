// Package commands implements the graphedit command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Alekasndr/graphedit/internal/app"
	"github.com/Alekasndr/graphedit/pkg/config"
	"github.com/Alekasndr/graphedit/pkg/version"
)

// cli carries state shared by every subcommand of one root command.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	appOpts []app.Option
}

// Execute runs the root command against os.Args.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. The options are passed to every
// app.New call, which lets tests inject a store.
func NewRootCmd(opts ...app.Option) *cobra.Command {
	c := &cli{v: viper.New(), appOpts: opts}

	rootCmd := &cobra.Command{
		Use:   version.AppName,
		Short: "Interactive graph editor",
		Long: `graphedit - edit, search and route through a weighted graph.

Run without a subcommand to open the terminal editor.`,
		Version:       version.Current,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
		RunE: c.runEditor,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "Config file (default $HOME/.graphedit.yaml)")
	flags.String("store", "", "Store URL: path, file://, mem://, sqlite://, s3:// or dynamodb://")
	flags.String("key", "", "Key the graph is stored under")
	flags.String("region", "", "AWS region for cloud stores")
	flags.String("endpoint", "", "AWS endpoint override for cloud stores")
	flags.Bool("json-logs", false, "Log as JSON")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("log-file", "", "Write logs here while the editor runs")
	flags.String("otel-endpoint", "", "OTLP/HTTP endpoint for traces")

	for key, flag := range map[string]string{
		"store.url":          "store",
		"store.key":          "key",
		"store.region":       "region",
		"store.endpoint":     "endpoint",
		"log.json":           "json-logs",
		"log.verbose":        "verbose",
		"log.file":           "log-file",
		"telemetry.endpoint": "otel-endpoint",
	} {
		_ = c.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.AddCommand(
		c.newEditCmd(),
		c.newNodeCmd(),
		c.newEdgeCmd(),
		c.newPathCmd(),
		c.newSearchCmd(),
		c.newComponentsCmd(),
		c.newExportCmd(),
		c.newImportCmd(),
		c.newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func (c *cli) initConfig() error {
	d := config.Default()
	c.v.SetDefault("store.url", d.Store.URL)
	c.v.SetDefault("store.key", d.Store.Key)
	c.v.SetDefault("store.timeout", d.Store.Timeout)
	c.v.SetDefault("store.region", "")
	c.v.SetDefault("store.endpoint", "")
	c.v.SetDefault("store.create_table", false)
	c.v.SetDefault("log.json", false)
	c.v.SetDefault("log.verbose", false)
	c.v.SetDefault("log.file", "")
	c.v.SetDefault("telemetry.endpoint", "")
	c.v.SetDefault("editor.highlight_duration", d.Editor.HighlightDuration)

	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		c.v.SetConfigFile(filepath.Join(home, ".graphedit.yaml"))
	}
	c.v.SetConfigType("yaml")
	c.v.SetEnvPrefix("GRAPHEDIT")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	if err := c.v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// open builds an app whose logs go to the command's stderr.
func (c *cli) open(cmd *cobra.Command, extra ...app.Option) (*app.App, error) {
	opts := append([]app.Option{app.WithLogOutput(cmd.ErrOrStderr())}, extra...)
	opts = append(opts, c.appOpts...)
	return app.New(cmd.Context(), c.cfg, opts...)
}

// withApp runs fn against a freshly opened app and closes it afterwards.
// A save failure during fn is reported as the command's error.
func (c *cli) withApp(cmd *cobra.Command, fn func(*app.App) error) (err error) {
	a, err := c.open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(context.WithoutCancel(cmd.Context())); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := fn(a); err != nil {
		return err
	}
	return a.SaveError()
}

func (c *cli) runEditor(cmd *cobra.Command, args []string) (err error) {
	var logOut io.Writer = io.Discard
	if c.cfg.Log.File != "" {
		f, err := os.OpenFile(c.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	a, err := c.open(cmd, app.WithLogOutput(logOut))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(context.WithoutCancel(cmd.Context())); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return a.RunEditor(cmd.Context())
}

func (c *cli) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the terminal editor",
		Args:  cobra.NoArgs,
		RunE:  c.runEditor,
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", version.AppName, version.Current, version.Commit)
		},
	}
}

func renderHelp(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FF99")).
		MarginBottom(1)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("GRAPHEDIT %s", version.Current)))
	if cmd.Long != "" {
		fmt.Fprintln(out, cmd.Long)
	} else {
		fmt.Fprintln(out, cmd.Short)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, titleStyle.Render("USAGE"))
	fmt.Fprintf(out, "  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(out, titleStyle.Render("COMMANDS"))
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				fmt.Fprintf(out, "  %-12s %s\n", sub.Name(), sub.Short)
			}
		}
		fmt.Fprintln(out)
	}

	if cmd.Example != "" {
		fmt.Fprintln(out, titleStyle.Render("EXAMPLES"))
		fmt.Fprintln(out, cmd.Example)
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, titleStyle.Render("FLAGS"))
	visit := func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		line := fmt.Sprintf("  --%-15s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			line += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Fprintln(out, flagStyle.Render(line))
	}
	cmd.LocalFlags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)
	fmt.Fprintln(out)
}
