// Package transport issues the five canonical user operations against the
// remote API over HTTP/JSON.
//
// # Overview
//
// The package provides:
//  1. A wire-agnostic contract (see the Transport interface) covering list,
//     get, create, update, and delete for the user resource.
//  2. A concrete HTTP implementation (see HTTPTransport) that validates
//     every outbound body before transmission, parses and validates every
//     inbound body before handing it back, attaches a bearer token obtained
//     from an injected TokenFunc, and maps response statuses to error kinds.
//
// # Error Handling
//
// Failures surface as *Error carrying a Kind: KindNotFound for a missing
// identifier, KindNetwork when no response was received, KindServer for a
// non-success status (with ClientFault set for 4xx other than 404), and
// KindMalformedResponse when a success status carried a body that failed
// inbound validation. Outbound validation failures pass through unchanged
// as *schema.ValidationError; they never reach the wire.
//
// Concurrency & Contexts
//
// HTTPTransport is safe for concurrent use. All operations accept a
// context.Context and honor cancellation and deadlines; per-call timeouts
// belong to the caller.
package transport
