// Package shell is the dialect-specific front end of komodo activation.
//
// This package handles:
//   - Rendering session action lists as bash-family or csh-family code
//   - Detecting the user's shell (bash, zsh, csh, tcsh)
//   - Generating the komodo_enable/komodo_disable hook snippets
//   - Locating and safely modifying shell rc files
//
// # Two Families, One Semantics
//
// Activation and deactivation are computed once, in the session package,
// as an ordered action list. The renderers here translate that single list
// into either dialect, so the two families cannot drift apart: adding a
// step to activation means adding an action, and both renderers must say
// how to spell it.
//
// The binary never mutates its parent shell. Everything it emits goes to
// stdout for the shell to eval:
//
//	eval "$(komodo activate bash)"
//	eval "`komodo activate csh`"
//
// The csh family adds a wrinkle: backtick substitution collapses newlines,
// so csh output is a sequence of semicolon-terminated one-liners, and the
// prompt lives in a `set` variable this process can never read, so all
// prompt logic is emitted as in-shell conditionals.
//
// # RC File Management
//
// `komodo init` installs a single hook line per shell:
//   - bash: ~/.bashrc
//   - zsh: ~/.zshrc
//   - csh: ~/.cshrc
//   - tcsh: ~/.tcshrc
//
// All modifications are idempotent, optionally backed up, and atomic
// (temp file + rename). `komodo uninit` removes the same line.
package shell
