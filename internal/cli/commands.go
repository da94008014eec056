package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mydot/internal/version"
	"github.com/arthur-debert/mydot/pkg/config"
	"github.com/arthur-debert/mydot/pkg/errors"
	"github.com/arthur-debert/mydot/pkg/filesystem"
	"github.com/arthur-debert/mydot/pkg/reconcile"
	"github.com/arthur-debert/mydot/pkg/types"
	"github.com/arthur-debert/mydot/pkg/workspace"
)

// hostNamesCompletion completes --host with the repository's host subtrees
func (g *globalOptions) hostNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws, err := g.open(cmd.Context(), true)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	hosts, err := ws.Scanner().Hosts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return hosts, cobra.ShellCompDirectiveNoFileComp
}

func newInitCmd(g *globalOptions) *cobra.Command {
	var branch, remote string

	cmd := &cobra.Command{
		Use:     "init <url>",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.dryRun {
				log.Info().Str("url", args[0]).Msg("Dry run, repository not created")
				return g.message(cmd, MsgDryRunNotice)
			}
			ws, err := workspace.Init(cmd.Context(), workspace.InitOptions{
				Options: g.workspaceOptions(false),
				URL:     args[0],
				Remote:  remote,
				Branch:  branch,
			})
			if err != nil {
				return err
			}
			return g.message(cmd, fmt.Sprintf(MsgInitialized, ws.Paths.Display(ws.Paths.Root()), ws.Paths.Host()))
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", MsgFlagBranch)
	cmd.Flags().StringVar(&remote, "remote", config.DefaultRemote, MsgFlagRemote)
	return cmd
}

func newAddCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add <path>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := g.reconciler(cmd.Context(), reconcile.Options{})
			if err != nil {
				return err
			}
			result, err := rec.Add(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
}

func newRemoveCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <path>",
		Aliases: []string{"rm"},
		Short:   MsgRemoveShort,
		Long:    MsgRemoveLong,
		Example: MsgRemoveExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := g.reconciler(cmd.Context(), reconcile.Options{})
			if err != nil {
				return err
			}
			result, err := rec.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
}

func newListCmd(g *globalOptions) *cobra.Command {
	var host string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := g.reconciler(cmd.Context(), reconcile.Options{})
			if err != nil {
				return err
			}
			if host == "" {
				host = rec.Workspace().Paths.Host()
			}
			files, err := rec.List(host)
			if err != nil {
				return err
			}
			return g.render(cmd, &types.Inventory{Host: host, Files: files})
		},
	}

	cmd.Flags().StringVar(&host, "host", "", MsgFlagHost)
	_ = cmd.RegisterFlagCompletionFunc("host", g.hostNamesCompletion)
	return cmd
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	var silent bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := g.reconciler(cmd.Context(), reconcile.Options{})
			if err != nil {
				return err
			}
			if silent {
				clean, err := rec.Clean(cmd.Context())
				if err != nil {
					return err
				}
				if !clean {
					return errors.New(errors.ErrNotInSync, MsgErrNotInSync)
				}
				return nil
			}
			report, err := rec.Status(cmd.Context())
			if err != nil {
				return err
			}
			return g.render(cmd, report)
		},
	}

	cmd.Flags().BoolVar(&silent, "silent", false, MsgFlagSilent)
	return cmd
}

func newSyncCmd(g *globalOptions) *cobra.Command {
	var mkdir bool

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := g.reconciler(cmd.Context(), reconcile.Options{
				CreateDirs: mkdir || g.appConfig().Sync.CreateDirs,
			})
			if err != nil {
				return err
			}
			report, err := rec.Sync(cmd.Context())
			if err != nil {
				return err
			}
			if err := g.render(cmd, report); err != nil {
				return err
			}
			if report.Failed() {
				code := errors.ErrAmbiguousState
				if report.Count(types.OutcomeFailed) > 0 {
					code = errors.ErrFilesystem
				}
				n := report.Count(types.OutcomeFailed) + report.Count(types.OutcomeNeedsResolution)
				return errors.Newf(code, MsgErrSyncFailed, n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&mkdir, "mkdir", false, MsgFlagMkdir)
	return cmd
}

func newCommitCmd(g *globalOptions) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:     "commit",
		Short:   MsgCommitShort,
		Long:    MsgCommitLong,
		GroupID: "repo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := g.reconciler(cmd.Context(), reconcile.Options{})
			if err != nil {
				return err
			}
			committed, err := rec.Commit(cmd.Context(), message, g.env.prompt)
			if err != nil {
				return err
			}
			switch {
			case committed == nil:
				return g.message(cmd, MsgNothingToCommit)
			case g.dryRun:
				return g.message(cmd, fmt.Sprintf(MsgWouldCommit, len(committed)))
			default:
				return g.message(cmd, fmt.Sprintf(MsgCommitted, len(committed)))
			}
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", MsgFlagMessage)
	return cmd
}

func newPushCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "push",
		Short:   MsgPushShort,
		GroupID: "repo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := g.reconciler(cmd.Context(), reconcile.Options{})
			if err != nil {
				return err
			}
			if err := rec.Push(cmd.Context()); err != nil {
				return err
			}
			return g.transferMessage(cmd, rec, MsgPushed)
		},
	}
}

func newPullCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "pull",
		Short:   MsgPullShort,
		GroupID: "repo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := g.reconciler(cmd.Context(), reconcile.Options{})
			if err != nil {
				return err
			}
			if err := rec.Pull(cmd.Context()); err != nil {
				return err
			}
			return g.transferMessage(cmd, rec, MsgPulled)
		},
	}
}

func (g *globalOptions) transferMessage(cmd *cobra.Command, rec *reconcile.Reconciler, format string) error {
	ws := rec.Workspace()
	pair, err := ws.Upstream(cmd.Context())
	if err != nil {
		return err
	}
	msg := fmt.Sprintf(format, pair.Local, ws.Remote())
	if g.dryRun {
		msg = MsgDryRunNotice
	}
	return g.message(cmd, msg)
}

func newHostsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "hosts",
		Short:   MsgHostsShort,
		GroupID: "repo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := g.open(cmd.Context(), g.readOnly())
			if err != nil {
				return err
			}
			hosts, err := ws.Scanner().Hosts()
			if err != nil {
				return err
			}
			return g.render(cmd, &types.HostList{
				Current:    ws.Paths.Host(),
				Hosts:      hosts,
				Registered: ws.Config.Hosts,
			})
		},
	}
}

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateConfigContent()
			if err != nil {
				return err
			}
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			target := g.env.appConfigPath
			fsys := g.env.fs
			exists, err := filesystem.Exists(fsys, target)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFilesystem, "failed to inspect %s", target)
			}
			if exists {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, target).WithDetail("path", target)
			}
			if g.dryRun {
				return g.message(cmd, MsgDryRunNotice)
			}
			if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrConfigSave, "failed to create %s", filepath.Dir(target))
			}
			if err := fsys.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrConfigSave, "failed to write %s", target)
			}
			return g.message(cmd, fmt.Sprintf(MsgConfigWritten, target))
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil {
				return err
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgVersionCommit, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgVersionBuildDate, version.Date)
			}
		},
	}
}
