package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep the dotfiles of all your machines in one repository"
	MsgInitShort       = "Create the repository from a remote"
	MsgAddShort        = "Move a file into the repository and link it back"
	MsgRemoveShort     = "Stop managing a file and restore a plain copy"
	MsgListShort       = "List the files managed for a host"
	MsgListLong        = "List displays every file of a host's subtree with its link state."
	MsgStatusShort     = "Show repository and link status"
	MsgSyncShort       = "Link every managed file into your home directory"
	MsgCommitShort     = "Commit every modified file"
	MsgPushShort       = "Push commits to the remote"
	MsgPullShort       = "Fetch and fast-forward from the remote"
	MsgHostsShort      = "List the hosts of the repository"
	MsgGenConfigShort  = "Print the default application configuration"
	MsgGenConfigLong   = "Print the default application configuration as commented TOML, or write it to the configuration file with --write."
	MsgTopicsShort     = "Display available documentation topics"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgInitialized      = "Initialized %s for host %s"
	MsgNothingToCommit  = "Nothing to commit"
	MsgCommitted        = "Committed %d file(s)"
	MsgWouldCommit      = "Would commit %d file(s)"
	MsgPushed           = "Pushed %s to %s"
	MsgPulled           = "Pulled %s from %s"
	MsgDryRunNotice     = "DRY RUN MODE - No changes were made"
	MsgConfigWritten    = "Wrote %s"
	MsgVersionFormat    = "mydot version %s\n"
	MsgVersionCommit    = "Commit: %s\n"
	MsgVersionBuildDate = "Built:  %s\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrNotInSync    = "repository has uncommitted changes"
	MsgErrSyncFailed   = "%d file(s) could not be linked"
	MsgErrConfigExists = "%s already exists"

	// Flag descriptions
	MsgFlagPath     = "Repository root (default $MYDOT_PATH or ~/.dotfiles)"
	MsgFlagLogLevel = "Log level: DEBUG, INFO, WARNING, ERROR, CRITICAL or NOTSET"
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagHost     = "Host whose files to list (default: this host)"
	MsgFlagSilent   = "Print nothing, report through the exit code"
	MsgFlagMkdir    = "Create missing parent directories"
	MsgFlagMessage  = "Commit message"
	MsgFlagBranch   = "Branch to check out (default: the remote's first branch)"
	MsgFlagRemote   = "Name of the remote"
	MsgFlagWrite    = "Write the configuration file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/remove-example.txt
	msgRemoveExampleRaw string
	MsgRemoveExample    = strings.TrimRight(msgRemoveExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/commit-long.txt
	msgCommitLongRaw string
	MsgCommitLong    = strings.TrimSpace(msgCommitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
