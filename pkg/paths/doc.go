// Package paths resolves the three anchors of a mydot invocation and does
// all path arithmetic between them.
//
// Layout:
//
//	$HOME/.dotfiles/            repository root (MYDOT_PATH, --path)
//	$HOME/.dotfiles/config.yaml repository configuration
//	$HOME/.dotfiles/<host>/     managed files for one machine
//
// A file at <root>/<host>/.config/nvim/init.lua is linked from
// $HOME/.config/nvim/init.lua. The shared suffix (.config/nvim/init.lua) is
// the file's relative path.
//
// Containment checks are built on filepath.Rel rather than string prefixes,
// so /home/u/.dotfiles2 is never considered inside /home/u/.dotfiles.
package paths
