package main

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Status describes where the catalog is in its load lifecycle.
type Status string

const (
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusDegraded Status = "degraded"
)

var errNotLoaded = errors.New("data not loaded yet")

// Snapshot is one fully aggregated load of the static documents. It is never
// mutated after it is committed.
type Snapshot struct {
	Generation  uint64
	Status      Status
	LoadedAt    time.Time
	Err         error
	DualCount   int
	Schools     []School
	Lookup      ConferenceLookup
	Teams       []Team
	Conferences []string
}

// NewSnapshot aggregates a loaded pair of documents.
func NewSnapshot(duals []DualResult, schools []School) *Snapshot {
	lookup := NewConferenceLookup(schools)
	teams := BuildTeams(duals, lookup)
	return &Snapshot{
		Status:      StatusReady,
		LoadedAt:    time.Now(),
		DualCount:   len(duals),
		Schools:     schools,
		Lookup:      lookup,
		Teams:       teams,
		Conferences: Conferences(teams),
	}
}

func degradedSnapshot(err error) *Snapshot {
	return &Snapshot{Status: StatusDegraded, LoadedAt: time.Now(), Err: err, Lookup: ConferenceLookup{}}
}

// Ready reports whether the snapshot holds data.
func (s *Snapshot) Ready() bool { return s.Status == StatusReady }

// Team finds a listed team by exact name.
func (s *Snapshot) Team(name string) (Team, bool) {
	for _, t := range s.Teams {
		if t.Name == name {
			return t, true
		}
	}
	return Team{}, false
}

// Detail builds the team's detail view from its duals and attaches the
// listed team, if any, as the header.
func (s *Snapshot) Detail(team string, duals []DualResult) TeamDetail {
	detail := BuildTeamDetail(team, duals, s.Lookup)
	if t, ok := s.Team(team); ok {
		detail.Team = &t
	}
	return detail
}

// Catalog holds the current snapshot. Every load takes a generation token
// from Begin; Commit applies a result only if no newer load has started, so a
// slow, superseded load can never overwrite a fresher one.
type Catalog struct {
	mu         sync.RWMutex
	persistMu  sync.Mutex
	generation atomic.Uint64
	current    *Snapshot
}

func NewCatalog() *Catalog {
	return &Catalog{current: &Snapshot{Status: StatusLoading, Err: errNotLoaded, Lookup: ConferenceLookup{}}}
}

// Begin issues the token for a new load.
func (c *Catalog) Begin() uint64 {
	return c.generation.Add(1)
}

// Latest reports the most recently issued token.
func (c *Catalog) Latest() uint64 {
	return c.generation.Load()
}

// Commit installs snap if gen is still the latest token. persist, when set,
// runs first; if it fails the catalog degrades instead. Persists are
// serialised with each other but not with readers, which keep seeing the
// previous snapshot until the swap. Commit reports whether anything was
// applied.
func (c *Catalog) Commit(gen uint64, snap *Snapshot, persist func() error) (bool, error) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	if gen != c.generation.Load() {
		return false, nil
	}

	var err error
	if persist != nil {
		if err = persist(); err != nil {
			snap = degradedSnapshot(err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A newer load may have started during persist. Its own commit will
	// rewrite the store once it gets persistMu.
	if gen != c.generation.Load() {
		return false, err
	}
	snap.Generation = gen
	c.current = snap
	return true, err
}

// Snapshot returns the current snapshot.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
