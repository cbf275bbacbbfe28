// Package repository manages the local clone of the skills repository.
//
// The package wraps go-git to provide the three operations the CLI needs:
//
//   - Clone: initial installation of the skills repository, with directory
//     conflict detection so an existing non-empty directory is never
//     silently overwritten.
//   - Pull: updating an existing installation, skipping when the working
//     tree has local modifications so user changes are never discarded.
//   - Describe: inspecting an installation (branch, last commit) for the
//     status command.
//
// Authentication follows a public-first strategy: operations are attempted
// without credentials, and a GitHub Personal Access Token from the OS
// credential store is only used when the remote rejects anonymous access.
// Technical git errors are translated into actionable messages (check the
// URL, check the network, configure a token with 'spawner auth set-token').
package repository
