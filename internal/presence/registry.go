// Package presence maintains the authoritative, in-memory set of
// currently connected participants. It is mutated only by register and
// disconnect events and read to compute scoped fan-out targets.
//
// Visibility is a hard contract: dispatchers (and admins) see every
// participant; a team member sees only their own team plus the
// dispatchers. Team members must never observe other teams' presence.
package presence

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Role classifies a connected participant.
type Role string

const (
	RoleDispatcher Role = "dispatcher"
	RoleAdmin      Role = "admin"
	RoleTeamMember Role = "team-member"
)

// RoleFromString parses a client-supplied role name. Matching is exact.
func RoleFromString(s string) (Role, error) {
	role := Role(s)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleDispatcher, RoleAdmin, RoleTeamMember:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
}

func (r Role) String() string {
	return string(r)
}

// Participant is one registered connection. Team is set iff the role is
// RoleTeamMember. At most one live entry exists per UserID: registering
// the same user again replaces the previous entry.
type Participant struct {
	UserID       string
	ConnectionID string
	Role         Role
	Team         order.Team
}

// Validate checks the registration payload: user and connection must be
// present, the role known, and the team set exactly when the role is
// team-member.
func (p Participant) Validate() error {
	if p.UserID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	if p.ConnectionID == "" {
		return errs.NewValueIsRequiredError("connectionId")
	}
	if err := p.Role.Validate(); err != nil {
		return err
	}

	if p.Role == RoleTeamMember {
		return p.Team.Validate()
	}
	if p.Team != "" {
		return errs.NewValueIsInvalidErrorWithCause("team",
			errors.New("team is only valid for team-member registrations"))
	}
	return nil
}

// Snapshot is the presence view for one scope. TeamMembers maps team
// name to its members; for a team-member scope it contains only the
// viewer's own team. Teams lists the team names present in TeamMembers,
// in canonical order.
type Snapshot struct {
	Dispatchers []Participant
	TeamMembers map[string][]Participant
	Teams       []string
}

// Registry is the concurrent-safe participant index. The primary index
// is keyed by user; a reverse index by connection gives O(1) disconnect
// cleanup.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]Participant
	byConn map[string]string
}

// NewRegistry creates an empty presence registry.
func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]Participant),
		byConn: make(map[string]string),
	}
}

// Register inserts or replaces the entry for the participant's user.
// A stale entry for the same user (e.g. a reconnect racing the old
// connection's teardown) is displaced together with its reverse mapping.
// The participant must be valid.
func (r *Registry) Register(p Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.byUser[p.UserID]; ok {
		delete(r.byConn, previous.ConnectionID)
	}
	r.byUser[p.UserID] = p
	r.byConn[p.ConnectionID] = p.UserID

	return nil
}

// Unregister removes the participant owning the connection from both
// indexes. It is an idempotent no-op for unknown connections, and it
// leaves the user's entry alone if the user has since re-registered on
// a different connection.
//
// Returns the removed participant and whether a removal happened.
func (r *Registry) Unregister(connectionID string) (Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connectionID]
	if !ok {
		return Participant{}, false
	}
	delete(r.byConn, connectionID)

	p, ok := r.byUser[userID]
	if !ok || p.ConnectionID != connectionID {
		return Participant{}, false
	}
	delete(r.byUser, userID)

	return p, true
}

// ParticipantByConnection returns the participant currently owning the
// connection, if any.
func (r *Registry) ParticipantByConnection(connectionID string) (Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.byConn[connectionID]
	if !ok {
		return Participant{}, false
	}
	p, ok := r.byUser[userID]

	return p, ok
}

// Count returns the number of registered participants.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}

// SnapshotFor returns the presence view visible to the given viewer
// under the scoping contract. The snapshot reflects one instant of the
// registry.
func (r *Registry) SnapshotFor(viewer Participant) Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if viewer.Role == RoleTeamMember {
		return r.teamSnapshotLocked(viewer.Team)
	}
	return r.dispatcherSnapshotLocked()
}

// Snapshots computes the dispatcher-scope snapshot and one snapshot per
// team that currently has members, all under a single registry read so
// every scope reflects the same instant.
func (r *Registry) Snapshots() (Snapshot, map[order.Team]Snapshot) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teamSnapshots := make(map[order.Team]Snapshot)
	for _, team := range order.Teams() {
		snapshot := r.teamSnapshotLocked(team)
		if len(snapshot.TeamMembers[team.String()]) > 0 {
			teamSnapshots[team] = snapshot
		}
	}

	return r.dispatcherSnapshotLocked(), teamSnapshots
}

func (r *Registry) dispatcherSnapshotLocked() Snapshot {
	snapshot := Snapshot{TeamMembers: make(map[string][]Participant)}

	for _, p := range r.byUser {
		if p.Role == RoleTeamMember {
			snapshot.TeamMembers[p.Team.String()] = append(snapshot.TeamMembers[p.Team.String()], p)
		} else {
			snapshot.Dispatchers = append(snapshot.Dispatchers, p)
		}
	}

	sortParticipants(snapshot.Dispatchers)
	for _, team := range order.Teams() {
		if members := snapshot.TeamMembers[team.String()]; len(members) > 0 {
			sortParticipants(members)
			snapshot.Teams = append(snapshot.Teams, team.String())
		}
	}

	return snapshot
}

func (r *Registry) teamSnapshotLocked(team order.Team) Snapshot {
	snapshot := Snapshot{TeamMembers: make(map[string][]Participant)}

	for _, p := range r.byUser {
		switch {
		case p.Role == RoleTeamMember && p.Team == team:
			snapshot.TeamMembers[team.String()] = append(snapshot.TeamMembers[team.String()], p)
		case p.Role != RoleTeamMember:
			snapshot.Dispatchers = append(snapshot.Dispatchers, p)
		}
	}

	sortParticipants(snapshot.Dispatchers)
	if members := snapshot.TeamMembers[team.String()]; len(members) > 0 {
		sortParticipants(members)
		snapshot.Teams = append(snapshot.Teams, team.String())
	}

	return snapshot
}

func sortParticipants(participants []Participant) {
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].UserID < participants[j].UserID
	})
}
