package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const schoolsFile = "schools.json"

// Source opens one of the static data documents by file name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// DirSource reads documents from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return f, nil
}

func (s DirSource) String() string { return s.Dir }

// HTTPSource fetches documents relative to a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	url := strings.TrimRight(s.BaseURL, "/") + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: non-200 status code: %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

func (s HTTPSource) String() string { return s.BaseURL }

// NewSource picks an HTTP source for http(s) URLs and a directory otherwise.
func NewSource(location string, timeout time.Duration) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{BaseURL: location, Client: &http.Client{Timeout: timeout}}
	}
	return DirSource{Dir: location}
}

// Loader fetches the two static documents and installs them in the catalog
// and the store.
type Loader struct {
	source    Source
	dualsFile string
	store     *Store
	catalog   *Catalog
	logger    *Logger
}

func NewLoader(source Source, dualsFile string, store *Store, catalog *Catalog, logger *Logger) *Loader {
	return &Loader{source: source, dualsFile: dualsFile, store: store, catalog: catalog, logger: logger}
}

// Fetch retrieves duals and schools concurrently and returns once both are
// parsed. The first error wins.
func (l *Loader) Fetch(ctx context.Context) ([]DualResult, []School, error) {
	var (
		wg               sync.WaitGroup
		duals            []DualResult
		schools          []School
		dualsErr, schErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		dualsErr = fetchJSON(ctx, l.source, l.dualsFile, &duals)
	}()
	go func() {
		defer wg.Done()
		schErr = fetchJSON(ctx, l.source, schoolsFile, &schools)
	}()
	wg.Wait()

	if dualsErr != nil {
		return nil, nil, dualsErr
	}
	if schErr != nil {
		return nil, nil, schErr
	}
	return duals, schools, nil
}

func fetchJSON(ctx context.Context, source Source, name string, into any) error {
	body, err := source.Open(ctx, name)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(into); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// Load runs one full load. Failures degrade the catalog and are returned but
// never retried. A load that finishes after a newer one started is dropped.
func (l *Loader) Load(ctx context.Context) error {
	gen := l.catalog.Begin()
	start := time.Now()
	l.logger.Info("📥 Loading %s and %s from %s (generation %d)", l.dualsFile, schoolsFile, l.source, gen)

	duals, schools, err := l.Fetch(ctx)
	if err != nil {
		err = fmt.Errorf("loading data: %w", err)
		if applied, _ := l.catalog.Commit(gen, degradedSnapshot(err), nil); applied {
			l.logger.Error("❌ %v, showing no data", err)
		} else {
			l.logger.Warn("Discarding failed load %d, a newer load is in flight: %v", gen, err)
		}
		return err
	}

	for _, c := range CrossCheckMirrors(duals) {
		l.logger.Warn("Mirrored dual mismatch (%s): %s vs %s on %s", c.Reason, c.Record.School, c.Record.OpponentSchool, c.Record.Date)
	}

	snap := NewSnapshot(duals, schools)
	applied, err := l.catalog.Commit(gen, snap, func() error {
		return l.store.ReplaceDataset(ctx, duals, schools)
	})
	if err != nil {
		if applied {
			l.logger.Error("❌ Storing dataset failed, showing no data: %v", err)
		} else {
			l.logger.Warn("Storing superseded load %d failed: %v", gen, err)
		}
		return err
	}
	if !applied {
		l.logger.Warn("Discarding stale load %d, generation %d is newer", gen, l.catalog.Latest())
		return nil
	}

	l.logger.Info("✅ Loaded %d duals, %d schools → %d D1 teams in %d conferences (%s)",
		len(duals), len(schools), len(snap.Teams), len(snap.Conferences), time.Since(start).Round(time.Millisecond))
	return nil
}

// Watch reloads on every tick until ctx is done.
func (l *Loader) Watch(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Load(ctx)
		}
	}
}
