// Package config loads mydot's two configuration layers.
//
// The application config controls the tool itself and is layered with koanf:
// embedded defaults, then $XDG_CONFIG_HOME/mydot/config.toml, then MYDOT_*
// environment variables. Command-line flags are applied on top by the CLI.
//
// The repository config (config.yaml at the repository root) is shared by
// every machine using the repository. It records the known hosts and the
// upstream remote and branch.
package config
