package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mat-analytics/templates"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type app struct {
	cfg     *Config
	logger  *Logger
	store   *Store
	catalog *Catalog
	loader  *Loader
}

func (a *app) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(a.requestLogger)

	r.HandleFunc("/", a.homeHandler).Methods(http.MethodGet)
	r.HandleFunc("/teams", a.teamsPageHandler).Methods(http.MethodGet)
	r.HandleFunc("/teams/view", a.teamsViewHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/teams", a.apiTeamsHandler).Methods(http.MethodGet)
	api.HandleFunc("/teams/{team}/results", a.apiTeamResultsHandler).Methods(http.MethodGet)
	api.HandleFunc("/reload", a.reloadHandler).Methods(http.MethodPost)

	if dir, ok := a.loader.source.(DirSource); ok {
		r.PathPrefix("/data/").Handler(http.StripPrefix("/data/", http.FileServer(http.Dir(dir.Dir))))
	}
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *app) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		logger := a.logger.With("request_id", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(withLogger(r.Context(), logger)))
		logger.Debug("%s %s → %d in %s", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Microsecond))
	})
}

func (a *app) homeHandler(w http.ResponseWriter, r *http.Request) {
	snap := a.catalog.Snapshot()
	component := templates.Home(templates.HomePageData{
		Season:          a.cfg.Season,
		Status:          string(snap.Status),
		TeamCount:       len(snap.Teams),
		ConferenceCount: len(snap.Conferences),
		DualCount:       snap.DualCount,
		SchoolCount:     len(snap.Schools),
		LoadedAt:        snap.LoadedAt,
	})
	templ.Handler(component).ServeHTTP(w, r)
}

func (a *app) teamsPageHandler(w http.ResponseWriter, r *http.Request) {
	state := ParseViewState(r.URL.Query())
	component := templates.TeamsPage(a.teamsPageData(r.Context(), state))
	templ.Handler(component).ServeHTTP(w, r)
}

// teamsViewHandler applies one field change to the state in the query and
// renders the view fragment. The canonical query goes back in X-View-Query.
func (a *app) teamsViewHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := ParseViewState(q)
	if field := q.Get("field"); field != "" {
		state = state.Apply(Change{Field: field, Value: q.Get("value")})
	}
	w.Header().Set("X-View-Query", "?"+state.Encode())
	component := templates.TeamsView(a.teamsPageData(r.Context(), state))
	templ.Handler(component).ServeHTTP(w, r)
}

func (a *app) apiTeamsHandler(w http.ResponseWriter, r *http.Request) {
	state := ParseViewState(r.URL.Query())
	snap := a.catalog.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      snap.Status,
		"conferences": snap.Conferences,
		"teams":       ViewTeams(snap.Teams, state),
	})
}

func (a *app) apiTeamResultsHandler(w http.ResponseWriter, r *http.Request) {
	team := mux.Vars(r)["team"]
	snap := a.catalog.Snapshot()
	if !snap.Ready() {
		writeJSON(w, http.StatusOK, snap.Detail(team, nil))
		return
	}
	duals, err := a.store.TeamDuals(r.Context(), team)
	if err != nil {
		loggerFrom(r.Context(), a.logger).Error("Loading results for %q: %v", team, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load team results"})
		return
	}
	writeJSON(w, http.StatusOK, snap.Detail(team, duals))
}

func (a *app) reloadHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.loader.Load(r.Context()); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{"status": StatusDegraded, "error": err.Error()})
		return
	}
	snap := a.catalog.Snapshot()
	stored, err := a.store.CountDuals(r.Context())
	if err != nil {
		loggerFrom(r.Context(), a.logger).Warn("Counting stored duals: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     snap.Status,
		"generation": snap.Generation,
		"teams":      len(snap.Teams),
		"duals":      stored,
	})
}

// teamDetail resolves the selected team's matches. Store errors are logged
// and shown as an empty result set.
func (a *app) teamDetail(ctx context.Context, snap *Snapshot, team string) TeamDetail {
	if !snap.Ready() {
		return snap.Detail(team, nil)
	}
	duals, err := a.store.TeamDuals(ctx, team)
	if err != nil {
		loggerFrom(ctx, a.logger).Error("Loading results for %q: %v", team, err)
		duals = nil
	}
	return snap.Detail(team, duals)
}

func (a *app) teamsPageData(ctx context.Context, state ViewState) templates.TeamsPageData {
	snap := a.catalog.Snapshot()
	data := templates.TeamsPageData{
		Status:       string(snap.Status),
		SelectedTeam: state.Team,
		SortBy:       string(state.Sort),
		Conference:   state.Conference,
		Conferences:  snap.Conferences,
	}
	for _, t := range ViewTeams(snap.Teams, state) {
		data.Teams = append(data.Teams, teamOption(t))
	}
	if state.Team != "" && snap.Status != StatusLoading {
		view := detailView(a.teamDetail(ctx, snap, state.Team))
		data.Detail = &view
	}
	return data
}

func teamOption(t Team) templates.TeamOption {
	return templates.TeamOption{
		Name:          t.Name,
		Wins:          t.Wins,
		Losses:        t.Losses,
		WinPercentage: t.WinPercentage,
		Conference:    t.Conference,
	}
}

func detailView(d TeamDetail) templates.TeamDetailView {
	view := templates.TeamDetailView{
		Name: d.Name,
		Records: []templates.RecordView{
			recordView("Overall", d.Overall),
			recordView("Conference", d.Conference),
			recordView("Non-Conference", d.NonConference),
		},
	}
	if d.Team != nil {
		header := teamOption(*d.Team)
		view.Header = &header
	}
	for _, m := range d.Matches {
		view.Matches = append(view.Matches, templates.MatchRow{
			Date:          m.Date.Display(),
			Opponent:      m.OpponentSchool,
			Location:      m.Location,
			Score:         m.Score,
			OpponentScore: m.OpponentScore,
			D1:            m.OpponentD1(),
			Won:           m.Won(),
			Result:        string(m.Result),
			Conference:    m.IsConferenceMatch,
		})
	}
	return view
}

func recordView(label string, r Record) templates.RecordView {
	return templates.RecordView{Label: label, Wins: r.Wins, Losses: r.Losses, WinPercentage: r.WinPercentage}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
