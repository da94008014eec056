// Package cli holds the mydot command tree.
package cli

import (
	"context"
	"embed"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mydot/internal/version"
	"github.com/arthur-debert/mydot/pkg/cobrax/topics"
	"github.com/arthur-debert/mydot/pkg/config"
	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/logging"
	"github.com/arthur-debert/mydot/pkg/paths"
	"github.com/arthur-debert/mydot/pkg/reconcile"
	"github.com/arthur-debert/mydot/pkg/ui"
	"github.com/arthur-debert/mydot/pkg/vcs"
	"github.com/arthur-debert/mydot/pkg/workspace"
)

//go:embed topics
var topicFiles embed.FS

// env is what the commands take from the machine they run on
type env struct {
	backend       vcs.Backend
	fs            filesystem.FS
	home          string
	host          string
	appConfigPath string
	prompt        reconcile.MessageFunc
}

func defaultEnv() *env {
	return &env{
		backend:       vcs.GitBackend{},
		fs:            filesystem.NewOS(),
		appConfigPath: config.AppConfigPath(),
		prompt:        ui.PromptCommitMessage,
	}
}

// globalOptions carries the persistent flags and the loaded app config
type globalOptions struct {
	path      string
	logLevel  string
	verbosity int
	dryRun    bool
	format    string
	silent    bool

	app *config.AppConfig
	env *env
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd(defaultEnv())
	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context) int {
	rootCmd, g := newRootCmd(defaultEnv())
	return g.execute(ctx, rootCmd)
}

func (g *globalOptions) execute(ctx context.Context, rootCmd *cobra.Command) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if g.silent {
		return 1
	}
	if r, rerr := g.renderer(rootCmd.ErrOrStderr()); rerr == nil {
		_ = r.RenderError(err)
	} else {
		_, _ = io.WriteString(rootCmd.ErrOrStderr(), "Error: "+errors.Describe(err)+"\n")
	}
	return 1
}

func newRootCmd(e *env) (*cobra.Command, *globalOptions) {
	initTemplateFormatting()

	g := &globalOptions{env: e}

	rootCmd := &cobra.Command{
		Use:     "mydot",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&g.path, "path", "", MsgFlagPath)
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "loglevel", "", MsgFlagLogLevel)
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.OutputFormats, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "repo", Title: "REPOSITORY:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newAddCmd(g))
	rootCmd.AddCommand(newRemoveCmd(g))
	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newSyncCmd(g))
	rootCmd.AddCommand(newCommitCmd(g))
	rootCmd.AddCommand(newPushCmd(g))
	rootCmd.AddCommand(newPullCmd(g))
	rootCmd.AddCommand(newHostsCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Topic-based help, embedded in the binary
	_ = topics.InitializeWithOptions(rootCmd, afero.FromIOFS{FS: topicFiles}, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewMarkdownRenderer(styledHelp()),
	})

	return rootCmd, g
}

// setup loads the app config and configures logging before any command
func (g *globalOptions) setup(cmd *cobra.Command) error {
	app, err := config.LoadAppConfig(g.env.appConfigPath)
	if err != nil {
		return err
	}
	g.app = app

	if f := cmd.Flags().Lookup("silent"); f != nil && f.Value.String() == "true" {
		g.silent = true
		logging.Silence()
		return nil
	}

	level := g.logLevel
	if level == "" && g.verbosity == 0 {
		level = app.Log.Level
	}
	if err := logging.SetupLogger(level, g.verbosity); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid log level")
	}
	log.Debug().Str("command", cmd.Name()).Msg("Command started")
	return nil
}

func (g *globalOptions) appConfig() *config.AppConfig {
	if g.app == nil {
		if app, err := config.LoadDefaults(); err == nil {
			g.app = app
		} else {
			g.app = &config.AppConfig{}
		}
	}
	return g.app
}

func (g *globalOptions) home() string {
	if g.env.home != "" {
		return g.env.home
	}
	home, err := paths.GetHomeDirectory()
	if err != nil {
		return ""
	}
	return home
}

// renderer builds the output renderer for --format, falling back to the
// configured output format
func (g *globalOptions) renderer(w io.Writer) (ui.Renderer, error) {
	name := g.format
	if name == "" {
		name = g.appConfig().Output.Format
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w, g.home())
}

func (g *globalOptions) render(cmd *cobra.Command, result interface{}) error {
	r, err := g.renderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

func (g *globalOptions) message(cmd *cobra.Command, msg string) error {
	r, err := g.renderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return r.RenderMessage(msg)
}

func (g *globalOptions) workspaceOptions(readOnly bool) workspace.Options {
	return workspace.Options{
		Root:     g.path,
		Host:     g.env.host,
		Home:     g.env.home,
		FS:       g.env.fs,
		Backend:  g.env.backend,
		App:      g.appConfig(),
		ReadOnly: readOnly,
	}
}

// readOnly is true when the command must not write to the repository
func (g *globalOptions) readOnly() bool {
	return g.silent || g.dryRun
}

func (g *globalOptions) open(ctx context.Context, readOnly bool) (*workspace.Workspace, error) {
	return workspace.Open(ctx, g.workspaceOptions(readOnly))
}

func (g *globalOptions) reconciler(ctx context.Context, opts reconcile.Options) (*reconcile.Reconciler, error) {
	ws, err := g.open(ctx, g.readOnly())
	if err != nil {
		return nil, err
	}
	opts.DryRun = g.dryRun
	return reconcile.New(ws, opts), nil
}
