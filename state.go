package main

import (
	"net/url"
	"strings"
)

// SortKey selects the team list ordering.
type SortKey string

const (
	SortByName          SortKey = "name"
	SortByWinPercentage SortKey = "winPercentage"
)

// AllConferences is the conference filter value that disables filtering.
const AllConferences = "all"

// Query parameter names, also used as reducer field names.
const (
	paramTeam       = "team"
	paramSort       = "sort"
	paramConference = "conference"
)

// ViewState is the teams page state. The query string is its canonical
// external form: every change is parsed, reduced, and serialised back.
type ViewState struct {
	Team       string  `json:"team"`
	Sort       SortKey `json:"sort"`
	Conference string  `json:"conference"`
}

func DefaultViewState() ViewState {
	return ViewState{Sort: SortByWinPercentage, Conference: AllConferences}
}

// ParseViewState reads team, sort and conference from query values, falling
// back to the defaults for anything missing or unrecognised.
func ParseViewState(q url.Values) ViewState {
	s := DefaultViewState()
	s = s.Apply(Change{Field: paramTeam, Value: q.Get(paramTeam)})
	s = s.Apply(Change{Field: paramSort, Value: q.Get(paramSort)})
	s = s.Apply(Change{Field: paramConference, Value: q.Get(paramConference)})
	return s
}

// ParseViewQuery parses a raw query string, with or without the leading "?".
func ParseViewQuery(raw string) (ViewState, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return DefaultViewState(), err
	}
	return ParseViewState(q), nil
}

// Encode serialises the state as team, sort, conference. Team is omitted when
// empty and conference when it is "all"; sort is always present.
func (s ViewState) Encode() string {
	parts := make([]string, 0, 3)
	if s.Team != "" {
		parts = append(parts, paramTeam+"="+url.QueryEscape(s.Team))
	}
	sort := s.Sort
	if sort == "" {
		sort = SortByWinPercentage
	}
	parts = append(parts, paramSort+"="+url.QueryEscape(string(sort)))
	if s.Conference != "" && s.Conference != AllConferences {
		parts = append(parts, paramConference+"="+url.QueryEscape(s.Conference))
	}
	return strings.Join(parts, "&")
}

// Change is a single user edit to one field of the view state.
type Change struct {
	Field string
	Value string
}

// Apply returns the state with the change applied. Unknown fields leave the
// state untouched.
func (s ViewState) Apply(c Change) ViewState {
	switch c.Field {
	case paramTeam:
		s.Team = c.Value
	case paramSort:
		switch SortKey(c.Value) {
		case SortByName:
			s.Sort = SortByName
		default:
			s.Sort = SortByWinPercentage
		}
	case paramConference:
		if c.Value == "" {
			s.Conference = AllConferences
		} else {
			s.Conference = c.Value
		}
	}
	return s
}
