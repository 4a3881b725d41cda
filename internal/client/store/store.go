package store

import (
	"context"
	"sync"

	"github.com/rosterhq/roster/internal/client/transport"
	"github.com/rosterhq/roster/internal/schema"
)

// Snapshot is the read model handed to consumers. It is a copy; mutating
// it does not affect the store.
type Snapshot struct {
	// Users is the current collection, unique by identifier, in server
	// response order.
	Users []schema.User
	// Selected is the entity picked by FetchByID or SelectUser, or nil.
	Selected *schema.User
	// Pending is true while any action's round-trip is outstanding.
	Pending bool
	// LastErr is the normalized error of the most recently failed action,
	// cleared when the next action starts or by ClearError.
	LastErr *Error
}

// Store owns the state; see the package documentation for the action
// protocol and the ordering discipline.
type Store struct {
	transport transport.Transport

	mu       sync.Mutex
	users    []schema.User
	selected *schema.User
	inflight int
	lastErr  *Error

	// seq numbers action invocations; applied records, per identifier,
	// the seq of the last action that touched it. Together they enforce
	// invocation-order wins for same-identifier conflicts.
	seq     uint64
	applied map[string]uint64
}

// New returns an empty store backed by t.
func New(t transport.Transport) *Store {
	return &Store{
		transport: t,
		applied:   make(map[string]uint64),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Snapshot{
		Users:   append([]schema.User(nil), s.users...),
		Pending: s.inflight > 0,
		LastErr: s.lastErr,
	}
	if s.selected != nil {
		sel := *s.selected
		out.Selected = &sel
	}
	return out
}

// begin runs the invocation phase of the action protocol and hands back
// the action's sequence number. It happens before any suspension point, so
// state read right after an action starts always shows Pending.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.inflight++
	s.lastErr = nil
	return s.seq
}

// fail runs the failure completion: record the normalized error, leave
// collection and selection untouched.
func (s *Store) fail(err error) error {
	norm := normalize(err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.lastErr = norm
	return norm
}

// FetchAll replaces the collection with the server's current list.
func (s *Store) FetchAll(ctx context.Context) error {
	seq := s.begin()

	users, err := s.transport.List(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.users = s.reconcileList(users, seq)
	return nil
}

// FetchByID sets the selection to the fetched entity. The collection is
// not touched.
func (s *Store) FetchByID(ctx context.Context, id string) error {
	seq := s.begin()

	u, err := s.transport.GetByID(ctx, id)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.applied[id] > seq {
		// A later-invoked mutation already advanced this identifier; the
		// fetched copy is stale.
		return nil
	}
	sel := u
	s.selected = &sel
	return nil
}

// Create appends the entity returned by the server to the collection.
// Input failing the schema rules never reaches the transport; the failure
// surfaces as a KindValidation error through the usual protocol.
func (s *Store) Create(ctx context.Context, in schema.CreateUserInput) error {
	seq := s.begin()

	if err := schema.ValidateCreate(in); err != nil {
		return s.fail(err)
	}

	u, err := s.transport.Create(ctx, in)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.applied[u.ID] > seq {
		return nil
	}
	s.applied[u.ID] = seq
	// The collection stays unique by identifier even if the server hands
	// back an identifier we already hold.
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return nil
		}
	}
	s.users = append(s.users, u)
	return nil
}

// Update replaces the matching collection element with the entity returned
// by the server; a missing element is appended rather than dropped. A
// matching selection is refreshed too.
func (s *Store) Update(ctx context.Context, id string, in schema.UpdateUserInput) error {
	seq := s.begin()

	if err := schema.ValidateUpdate(in); err != nil {
		return s.fail(err)
	}

	u, err := s.transport.Update(ctx, id, in)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.applied[id] > seq {
		return nil
	}
	s.applied[id] = seq

	replaced := false
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = u
			replaced = true
			break
		}
	}
	if !replaced {
		// Never silently drop a successful server mutation.
		s.users = append(s.users, u)
	}
	if s.selected != nil && s.selected.ID == id {
		sel := u
		s.selected = &sel
	}
	return nil
}

// Delete removes the matching element from the collection and clears a
// matching selection.
func (s *Store) Delete(ctx context.Context, id string) error {
	seq := s.begin()

	if err := s.transport.Delete(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.applied[id] > seq {
		return nil
	}
	s.applied[id] = seq

	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	return nil
}

// SelectUser sets the selection to a copy of u, or clears it when u is
// nil. Purely local; no round-trip.
func (s *Store) SelectUser(u *schema.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.selected = nil
		return
	}
	sel := *u
	s.selected = &sel
}

// ClearError drops the last error without starting a new action.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// reconcileList merges a fetched list into local state under the ordering
// discipline: rows the fetch knows nothing about stay if a later-invoked
// mutation produced them, fetched rows lose to later-invoked local
// mutations, and everything else lands in server order. Caller holds mu.
func (s *Store) reconcileList(fetched []schema.User, seq uint64) []schema.User {
	local := make(map[string]int, len(s.users))
	for i, u := range s.users {
		local[u.ID] = i
	}

	next := make([]schema.User, 0, len(fetched))
	seen := make(map[string]struct{}, len(fetched))
	for _, u := range fetched {
		seen[u.ID] = struct{}{}
		if s.applied[u.ID] > seq {
			// Mutated after this fetch was invoked: keep the local row if
			// it still exists, drop the fetched one if it was deleted.
			if i, ok := local[u.ID]; ok {
				next = append(next, s.users[i])
			}
			continue
		}
		next = append(next, u)
	}

	// Rows created or updated after this fetch was invoked that the
	// fetched list does not contain yet.
	for _, u := range s.users {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		if s.applied[u.ID] > seq {
			next = append(next, u)
		}
	}

	return next
}
