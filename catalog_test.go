package main

import (
	"errors"
	"testing"
	"time"
)

func TestCatalogStartsLoading(t *testing.T) {
	c := NewCatalog()
	snap := c.Snapshot()
	if snap.Status != StatusLoading {
		t.Errorf("status: got %q, want %q", snap.Status, StatusLoading)
	}
	if snap.Ready() {
		t.Error("a fresh catalog must not be ready")
	}
}

func TestCatalogDropsStaleCommit(t *testing.T) {
	c := NewCatalog()
	older := c.Begin()
	newer := c.Begin()

	fresh := NewSnapshot(sampleDuals(), sampleSchools())
	if applied, err := c.Commit(newer, fresh, nil); !applied || err != nil {
		t.Fatalf("newer commit: applied=%v err=%v", applied, err)
	}

	persisted := false
	stale := NewSnapshot(nil, nil)
	applied, err := c.Commit(older, stale, func() error { persisted = true; return nil })
	if applied || err != nil {
		t.Errorf("stale commit: applied=%v err=%v", applied, err)
	}
	if persisted {
		t.Error("stale commit must not persist")
	}
	if got := c.Snapshot(); got != fresh || got.Generation != newer {
		t.Errorf("current snapshot replaced by stale load (generation %d)", got.Generation)
	}
}

func TestCatalogPersistFailureDegrades(t *testing.T) {
	c := NewCatalog()
	gen := c.Begin()

	boom := errors.New("disk full")
	applied, err := c.Commit(gen, NewSnapshot(sampleDuals(), sampleSchools()), func() error { return boom })
	if !applied || !errors.Is(err, boom) {
		t.Fatalf("applied=%v err=%v", applied, err)
	}
	snap := c.Snapshot()
	if snap.Status != StatusDegraded || len(snap.Teams) != 0 {
		t.Errorf("got status %q with %d teams, want degraded with none", snap.Status, len(snap.Teams))
	}
}

func TestSnapshotTeam(t *testing.T) {
	snap := NewSnapshot(sampleDuals(), sampleSchools())
	if _, ok := snap.Team("Iowa"); !ok {
		t.Error("Iowa should be listed")
	}
	if _, ok := snap.Team("Wartburg"); ok {
		t.Error("Wartburg should not be listed")
	}
	if snap.DualCount != len(sampleDuals()) {
		t.Errorf("DualCount: got %d, want %d", snap.DualCount, len(sampleDuals()))
	}
}

func TestCatalogPersistDoesNotBlockReaders(t *testing.T) {
	c := NewCatalog()
	gen := c.Begin()

	started, release := make(chan struct{}), make(chan struct{})
	done := make(chan bool)
	go func() {
		applied, _ := c.Commit(gen, NewSnapshot(sampleDuals(), sampleSchools()), func() error {
			close(started)
			<-release
			return nil
		})
		done <- applied
	}()

	<-started
	read := make(chan Status)
	go func() { read <- c.Snapshot().Status }()
	select {
	case status := <-read:
		if status != StatusLoading {
			t.Errorf("status during persist: got %q, want %q", status, StatusLoading)
		}
	case <-time.After(time.Second):
		t.Fatal("Snapshot blocked while the dataset was being persisted")
	}

	close(release)
	if !<-done {
		t.Fatal("commit was not applied")
	}
	if c.Snapshot().Status != StatusReady {
		t.Errorf("status after commit: got %q", c.Snapshot().Status)
	}
}

func TestCatalogSupersededDuringPersist(t *testing.T) {
	c := NewCatalog()
	gen := c.Begin()

	applied, err := c.Commit(gen, NewSnapshot(sampleDuals(), sampleSchools()), func() error {
		c.Begin()
		return nil
	})
	if applied || err != nil {
		t.Errorf("applied=%v err=%v, want a dropped commit", applied, err)
	}
	if c.Snapshot().Status != StatusLoading {
		t.Errorf("status: got %q, want %q", c.Snapshot().Status, StatusLoading)
	}
}

func TestSnapshotDetailHeader(t *testing.T) {
	snap := NewSnapshot(sampleDuals(), sampleSchools())

	d := snap.Detail("Iowa", sampleDuals())
	if d.Team == nil || d.Team.Conference != "Big Ten" {
		t.Errorf("header team: got %+v, want Iowa in Big Ten", d.Team)
	}
	if d.Overall.Wins != 1 || d.Overall.Losses != 1 {
		t.Errorf("overall: got %+v", d.Overall)
	}
	if d := snap.Detail("Wartburg", sampleDuals()); d.Team != nil {
		t.Errorf("unlisted school got a header: %+v", d.Team)
	}
}
