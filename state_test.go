package main

import (
	"net/url"
	"testing"
)

func TestViewStateRoundTrip(t *testing.T) {
	state := ViewState{Team: "Iowa", Sort: SortByName, Conference: "Big Ten"}

	got := "?" + state.Encode()
	want := "?team=Iowa&sort=name&conference=Big+Ten"
	if got != want {
		t.Fatalf("Encode: got %q, want %q", got, want)
	}

	parsed, err := ParseViewQuery(got)
	if err != nil {
		t.Fatalf("ParseViewQuery: %v", err)
	}
	if parsed != state {
		t.Errorf("round trip: got %+v, want %+v", parsed, state)
	}
}

func TestViewStateDefaults(t *testing.T) {
	s := ParseViewState(url.Values{})
	if s != DefaultViewState() {
		t.Errorf("got %+v, want defaults", s)
	}
	if s.Team != "" || s.Sort != SortByWinPercentage || s.Conference != AllConferences {
		t.Errorf("defaults: got %+v", s)
	}
}

func TestViewStateEncodeOmissions(t *testing.T) {
	tests := []struct {
		state ViewState
		want  string
	}{
		{DefaultViewState(), "sort=winPercentage"},
		{ViewState{Team: "Penn State", Sort: SortByWinPercentage, Conference: AllConferences}, "team=Penn+State&sort=winPercentage"},
		{ViewState{Sort: SortByName, Conference: "Big 12"}, "sort=name&conference=Big+12"},
		{ViewState{Team: "William & Mary"}, "team=William+%26+Mary&sort=winPercentage"},
	}
	for _, tt := range tests {
		if got := tt.state.Encode(); got != tt.want {
			t.Errorf("Encode(%+v) = %q; want %q", tt.state, got, tt.want)
		}
	}
}

func TestParseViewStateUnknownSort(t *testing.T) {
	s := ParseViewState(url.Values{"sort": {"elo"}})
	if s.Sort != SortByWinPercentage {
		t.Errorf("sort: got %q, want %q", s.Sort, SortByWinPercentage)
	}
}

func TestViewStateApply(t *testing.T) {
	s := DefaultViewState()

	s = s.Apply(Change{Field: "team", Value: "Iowa"})
	s = s.Apply(Change{Field: "sort", Value: "name"})
	s = s.Apply(Change{Field: "conference", Value: "Big Ten"})
	want := ViewState{Team: "Iowa", Sort: SortByName, Conference: "Big Ten"}
	if s != want {
		t.Fatalf("got %+v, want %+v", s, want)
	}

	s = s.Apply(Change{Field: "conference", Value: ""})
	if s.Conference != AllConferences {
		t.Errorf("cleared conference: got %q, want all", s.Conference)
	}
	s = s.Apply(Change{Field: "team", Value: ""})
	if s.Team != "" {
		t.Errorf("cleared team: got %q", s.Team)
	}
	if got := s.Apply(Change{Field: "page", Value: "2"}); got != s {
		t.Errorf("unknown field changed state: %+v", got)
	}
}
