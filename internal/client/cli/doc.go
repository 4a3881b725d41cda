// Package cli provides the interactive Roster terminal client.
//
// It wires configuration, the session manager, and the user store into a
// read-eval-print loop. Every data command runs through the store, so the
// rendered view always reflects the store's snapshot: the rows, the selected
// user, and the pending/error state.
//
// Key features:
//   - Register / Login / Logout against the Roster server
//   - List, show, add, update and delete users
//   - Local row selection with a visible marker
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
