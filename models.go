package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Outcome is the result of a dual meet from the reporting school's side.
type Outcome string

const (
	Win  Outcome = "Win"
	Loss Outcome = "Loss"
)

// DualResult is one completed dual meet as reported by one school. The
// source data holds two mirrored records per meet, one per side.
type DualResult struct {
	Date           Date    `json:"date"`
	Location       string  `json:"location"`
	Criteria       *string `json:"criteria"`
	School         string  `json:"school"`
	Score          int     `json:"score"`
	OpponentSchool string  `json:"opponent_school"`
	OpponentScore  int     `json:"opponent_score"`
	Result         Outcome `json:"result"`
	D1             string  `json:"d1"`
}

// Won reports whether the reporting school won. Anything other than "Win"
// counts as a loss.
func (d DualResult) Won() bool { return d.Result == Win }

// OpponentD1 reports whether the opponent is a Division-1 program.
func (d DualResult) OpponentD1() bool { return d.D1 == "D1" }

// School is the static reference entry for a program. A nil conference means
// the program is not tracked as Division-1.
type School struct {
	School          string  `json:"school"`
	Conference      *string `json:"conference_2025"`
	Twitter         string  `json:"twitter"`
	Instagram       string  `json:"instagram"`
	PrimaryColor1   string  `json:"primary_color_1"`
	PrimaryColor2   *string `json:"primary_color_2"`
	SecondaryColor1 *string `json:"secondary_color_1"`
	SecondaryColor2 *string `json:"secondary_color_2"`
}

// Team is the aggregated dual record for one Division-1 school.
type Team struct {
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	TotalMatches  int     `json:"totalMatches"`
	WinPercentage float64 `json:"winPercentage"`
	Conference    string  `json:"conference"`
}

// Record is a win/loss tally over some subset of a team's duals.
type Record struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
}

// NewRecord builds a Record, guarding the percentage against zero matches.
func NewRecord(wins, losses int) Record {
	return Record{Wins: wins, Losses: losses, WinPercentage: winPercentage(wins, losses)}
}

func winPercentage(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}

// Match is a dual from the selected team's side, annotated with whether the
// opponent plays in the same conference.
type Match struct {
	DualResult
	IsConferenceMatch bool `json:"isConferenceMatch"`
}

// TeamDetail is everything the detail view shows for one selected team.
type TeamDetail struct {
	Name          string  `json:"name"`
	Team          *Team   `json:"team,omitempty"`
	Overall       Record  `json:"overall"`
	Conference    Record  `json:"conference"`
	NonConference Record  `json:"nonConference"`
	Matches       []Match `json:"matches"`
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Date is a calendar date. Values that do not parse keep their raw text and
// report !Valid(); they sort after every valid date.
type Date struct {
	time.Time
	raw string
}

// ParseDate parses the date representations found in the dual exports. Any
// time-of-day or zone is dropped; only the calendar date is kept.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), raw: s}, nil
		}
	}
	return Date{raw: s}, fmt.Errorf("unrecognised date %q", s)
}

func (d Date) Valid() bool { return !d.Time.IsZero() }

// Before orders dates chronologically, placing invalid dates last.
func (d Date) Before(other Date) bool {
	switch {
	case !d.Valid():
		return false
	case !other.Valid():
		return true
	}
	return d.Time.Before(other.Time)
}

func (d Date) String() string {
	if !d.Valid() {
		return d.raw
	}
	return d.Format("2006-01-02")
}

// Display renders the date the way the results table shows it.
func (d Date) Display() string {
	if !d.Valid() {
		return d.raw
	}
	return d.Format("1/2/2006")
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	parsed, _ := ParseDate(*s)
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
