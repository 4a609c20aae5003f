package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-analysisforms/internal/config"
	"github.com/goliatone/go-analysisforms/pkg/orchestrator"
	"github.com/goliatone/go-analysisforms/pkg/render"
	"github.com/goliatone/go-analysisforms/pkg/renderers/tui"
	"github.com/goliatone/go-analysisforms/pkg/renderers/vanilla"
)

// app carries state shared by every subcommand.
type app struct {
	cfgFile string
	verbose bool

	v      *viper.Viper
	cfg    *config.Config
	logger *slog.Logger

	// driver replaces the survey prompts; tests inject a scripted one.
	driver tui.PromptDriver
}

func newRootCmd(driver tui.PromptDriver) *cobra.Command {
	a := &app{v: viper.New(), driver: driver}

	root := &cobra.Command{
		Use:   "analysisforms",
		Short: "Inspect, render and export the analysis forms",
		Long: `analysisforms works with the two forms of the analysis workflow: the
method selection checkboxes and the spreadsheet upload. It renders them as
HTML or terminal prompts, checks upload filenames against the allow-list and
exports the submission contract as OpenAPI.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.setupLogging(cmd)
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./analysisforms.yaml when present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().String("uischema", "", "directory of UI overlay documents")
	_ = a.v.BindPFlag("uischema.dir", root.PersistentFlags().Lookup("uischema"))

	root.AddCommand(
		newDescribeCmd(a),
		newRenderCmd(a),
		newPromptCmd(a),
		newOpenAPICmd(a),
		newCheckCmd(a),
	)
	return root
}

// initConfig loads configuration from the config file and environment.
func (a *app) initConfig() error {
	config.SetDefaults(a.v)
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("analysisforms")
	}

	if err := a.v.ReadInConfig(); err == nil {
		a.logger.Debug("using config file", "file", a.v.ConfigFileUsed())
	} else if a.cfgFile != "" {
		return fmt.Errorf("read config %s: %w", a.cfgFile, err)
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) setupLogging(cmd *cobra.Command) {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}

	// Logs go to stderr so rendered output on stdout stays pipeable.
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(a.logger)
}

// orchestrator builds an orchestrator with both renderers registered. tuiOpts
// configure the terminal renderer.
func (a *app) orchestrator(tuiOpts ...tui.Option) (*orchestrator.Orchestrator, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	if a.driver != nil {
		tuiOpts = append(tuiOpts, tui.WithPromptDriver(a.driver))
	}
	terminal, err := tui.New(tuiOpts...)
	if err != nil {
		return nil, err
	}
	registry, err := render.NewRegistry(html, terminal)
	if err != nil {
		return nil, err
	}

	opts, err := a.cfg.OrchestratorOptions(registry)
	if err != nil {
		return nil, err
	}
	opts = append(opts, orchestrator.WithLogger(a.logger))
	return orchestrator.New(opts...), nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "written to %s\n", path)
	return nil
}
