package templates

import "time"

// Load states mirrored from the catalog.
const (
	StatusLoading  = "loading"
	StatusReady    = "ready"
	StatusDegraded = "degraded"
)

type HomePageData struct {
	Season          string
	Status          string
	TeamCount       int
	ConferenceCount int
	DualCount       int
	SchoolCount     int
	LoadedAt        time.Time
}

type TeamOption struct {
	Name          string
	Wins          int
	Losses        int
	WinPercentage float64
	Conference    string
}

type RecordView struct {
	Label         string
	Wins          int
	Losses        int
	WinPercentage float64
}

type MatchRow struct {
	Date          string
	Opponent      string
	Location      string
	Score         int
	OpponentScore int
	D1            bool
	Won           bool
	Result        string
	Conference    bool
}

type TeamDetailView struct {
	Name    string
	Header  *TeamOption
	Records []RecordView
	Matches []MatchRow
}

type TeamsPageData struct {
	Status       string
	SelectedTeam string
	SortBy       string
	Conference   string
	Conferences  []string
	Teams        []TeamOption
	Detail       *TeamDetailView
}
