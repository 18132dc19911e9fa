package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func render(t *testing.T, data TeamsPageData) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := TeamsView(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

func TestTeamsViewEscapesNames(t *testing.T) {
	doc := render(t, TeamsPageData{
		Status:       StatusReady,
		SelectedTeam: "William & Mary",
		SortBy:       "winPercentage",
		Conference:   "all",
		Teams:        []TeamOption{{Name: "William & Mary", Wins: 1, Conference: "<SoCon>", WinPercentage: 100}},
		Conferences:  []string{"<SoCon>"},
		Detail: &TeamDetailView{
			Name: "William & Mary",
			Matches: []MatchRow{
				{Date: "1/2/2025", Opponent: `<script>alert("x")</script>`, Score: 20, OpponentScore: 10, Won: true, Result: "Win"},
			},
			Records: []RecordView{{Label: "Overall", Wins: 1, WinPercentage: 100}},
		},
	})

	if doc.Find("script").Length() != 0 {
		t.Error("opponent name rendered as markup")
	}
	if got := doc.Find("td.opponent").Text(); got != `<script>alert("x")</script>` {
		t.Errorf("opponent: got %q", got)
	}
	if v, _ := doc.Find(`#conference-select option[selected]`).Attr("value"); v != "all" {
		t.Errorf("selected conference: got %q", v)
	}
	if v, _ := doc.Find(`#team-select option[selected]`).Attr("value"); v != "William & Mary" {
		t.Errorf("selected team: got %q", v)
	}
}

func TestTeamsViewBadges(t *testing.T) {
	doc := render(t, TeamsPageData{
		Status:     StatusReady,
		SortBy:     "name",
		Conference: "all",
		Detail: &TeamDetailView{
			Name: "Iowa",
			Matches: []MatchRow{
				{Date: "2/14/2025", Opponent: "Penn State", D1: true, Result: "Loss", Conference: true},
				{Date: "11/15/2024", Opponent: "Wartburg", D1: false, Won: true, Result: "Win"},
			},
		},
	})

	var badges []string
	doc.Find(".d1-badge").Each(func(_ int, s *goquery.Selection) { badges = append(badges, s.Text()) })
	if strings.Join(badges, ",") != "D1,Non-D1" {
		t.Errorf("d1 badges: got %v", badges)
	}
	if got := doc.Find("#results p").Text(); got != "2 dual meets this season" {
		t.Errorf("caption: got %q", got)
	}
	if doc.Find(".stat-card").Length() != 0 {
		t.Error("no stat cards without records")
	}
}

func TestTeamsViewSingleMeetCaption(t *testing.T) {
	doc := render(t, TeamsPageData{
		Status: StatusReady,
		Detail: &TeamDetailView{Name: "Iowa", Matches: []MatchRow{{Opponent: "Penn State", Result: "Loss"}}},
	})
	if got := doc.Find("#results p").Text(); got != "1 dual meet this season" {
		t.Errorf("caption: got %q", got)
	}
}

func TestHomeStates(t *testing.T) {
	tests := []struct {
		status string
		sel    string
	}{
		{StatusReady, "#season-summary"},
		{StatusDegraded, "#no-data"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Home(HomePageData{Season: "2025", Status: tt.status}).Render(context.Background(), &buf); err != nil {
			t.Fatalf("Render: %v", err)
		}
		doc, err := goquery.NewDocumentFromReader(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if doc.Find(tt.sel).Length() != 1 {
			t.Errorf("%s: missing %s", tt.status, tt.sel)
		}
		if doc.Find(`nav a[href="/teams"]`).Length() != 1 {
			t.Errorf("%s: missing Teams nav link", tt.status)
		}
	}
}

func TestTeamsViewKeepsHiddenSelection(t *testing.T) {
	doc := render(t, TeamsPageData{
		Status:       StatusReady,
		SelectedTeam: "Iowa",
		Conference:   "SoCon",
		Conferences:  []string{"Big 12", "Big Ten"},
		Teams:        []TeamOption{{Name: "Oklahoma State"}},
	})

	if v, _ := doc.Find("#team-select option[selected]").Attr("value"); v != "Iowa" {
		t.Errorf("selected team: got %q", v)
	}
	if v, _ := doc.Find("#conference-select option[selected]").Attr("value"); v != "SoCon" {
		t.Errorf("selected conference: got %q", v)
	}
	if n := doc.Find("#conference-select option").Length(); n != 4 {
		t.Errorf("conference options: got %d, want 4", n)
	}
}

func TestTeamsPageScriptUsesAddressBar(t *testing.T) {
	var buf bytes.Buffer
	if err := TeamsPage(TeamsPageData{Status: StatusReady}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	script := buf.String()
	if !strings.Contains(script, "new URLSearchParams(pending !== null ? pending : window.location.search)") {
		t.Error("view edits must start from the current URL query")
	}
	if strings.Contains(script, "getElementById('team-select')") {
		t.Error("view edits must not rebuild state from the select values")
	}
}
