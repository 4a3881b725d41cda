// Package store holds the client-side state container for the user
// collection: the current rows, an optional selection, a pending flag, and
// the last action error.
//
// # Overview
//
// A Store is constructed around a transport.Transport and exposes one
// action per remote operation (FetchAll, FetchByID, Create, Update,
// Delete) plus two local setters (SelectUser, ClearError). Consumers read
// state through Snapshot, never through direct field access; the Store is
// the only writer.
//
// Every action follows the same protocol: on invocation it atomically
// marks the store pending and clears the last error, then performs the
// transport round-trip, then atomically applies the result. A failure
// lands in LastErr as a normalized *Error and leaves the collection and
// selection untouched; Pending can never stick at true.
//
// # Concurrency
//
// Actions block the calling goroutine for the duration of the round-trip;
// run them in their own goroutines to overlap requests. All state
// transitions pass through one mutex, and Pending reports whether any
// action is still outstanding.
//
// Conflicting actions on the same identifier resolve in invocation order,
// not completion order: once a later-invoked action has applied to an
// identifier, an earlier-invoked action's response cannot touch that
// identifier anymore, and a list fetch cannot resurrect a row a
// later-invoked delete removed nor roll back one a later-invoked update
// replaced. Actions on disjoint identifiers, and whole-list fetches among
// themselves, settle in completion order.
package store
