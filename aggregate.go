package main

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ConferenceLookup maps school names to their conference. Schools with no
// conference are absent.
type ConferenceLookup map[string]string

// NewConferenceLookup indexes schools by name. A later entry for the same
// name wins; empty conferences count as none.
func NewConferenceLookup(schools []School) ConferenceLookup {
	lookup := make(ConferenceLookup, len(schools))
	for _, s := range schools {
		if s.Conference == nil || *s.Conference == "" {
			delete(lookup, s.School)
			continue
		}
		lookup[s.School] = *s.Conference
	}
	return lookup
}

// Conference resolves a school's conference.
func (l ConferenceLookup) Conference(school string) (string, bool) {
	c, ok := l[school]
	return c, ok
}

// BuildTeams groups duals by reporting school into win/loss tallies and keeps
// only schools that resolve to a conference, ordered by win percentage.
func BuildTeams(duals []DualResult, lookup ConferenceLookup) []Team {
	type tally struct {
		wins, losses int
	}
	tallies := make(map[string]*tally)
	var order []string

	for _, d := range duals {
		t, ok := tallies[d.School]
		if !ok {
			t = &tally{}
			tallies[d.School] = t
			order = append(order, d.School)
		}
		if d.Won() {
			t.wins++
		} else {
			t.losses++
		}
	}

	teams := make([]Team, 0, len(order))
	for _, name := range order {
		conference, ok := lookup.Conference(name)
		if !ok {
			continue
		}
		t := tallies[name]
		teams = append(teams, Team{
			Name:          name,
			Wins:          t.wins,
			Losses:        t.losses,
			TotalMatches:  t.wins + t.losses,
			WinPercentage: winPercentage(t.wins, t.losses),
			Conference:    conference,
		})
	}

	SortTeams(teams, SortByWinPercentage)
	return teams
}

// Conferences lists the distinct conferences of the given teams, ascending.
func Conferences(teams []Team) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range teams {
		if t.Conference == "" {
			continue
		}
		if _, dup := seen[t.Conference]; dup {
			continue
		}
		seen[t.Conference] = struct{}{}
		out = append(out, t.Conference)
	}
	sort.Strings(out)
	return out
}

// FilterTeams keeps teams in the given conference, or all of them for "all".
func FilterTeams(teams []Team, conference string) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if conference == AllConferences || t.Conference == conference {
			out = append(out, t)
		}
	}
	return out
}

// SortTeams orders teams in place: by name with English collation, or by win
// percentage descending. Equal keys keep their input order.
func SortTeams(teams []Team, by SortKey) {
	if by == SortByName {
		c := collate.New(language.English)
		sort.SliceStable(teams, func(i, j int) bool {
			return c.CompareString(teams[i].Name, teams[j].Name) < 0
		})
		return
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].WinPercentage > teams[j].WinPercentage
	})
}

// ViewTeams derives the selector list for a view state without touching the
// aggregate list.
func ViewTeams(teams []Team, state ViewState) []Team {
	out := FilterTeams(teams, state.Conference)
	SortTeams(out, state.Sort)
	return out
}

// AnnotateMatches keeps the duals reported by team, flags conference matches
// and orders them most recent first.
func AnnotateMatches(duals []DualResult, team string, lookup ConferenceLookup) []Match {
	teamConference, hasConference := lookup.Conference(team)

	matches := make([]Match, 0)
	for _, d := range duals {
		if d.School != team {
			continue
		}
		opponentConference, ok := lookup.Conference(d.OpponentSchool)
		matches = append(matches, Match{
			DualResult:        d,
			IsConferenceMatch: hasConference && ok && opponentConference == teamConference,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].Date, matches[j].Date
		if !a.Valid() || !b.Valid() {
			return a.Valid() && !b.Valid()
		}
		return b.Before(a)
	})
	return matches
}

// BuildTeamDetail computes the overall, conference and non-conference records
// for team. The header team is left for the caller to fill.
func BuildTeamDetail(team string, duals []DualResult, lookup ConferenceLookup) TeamDetail {
	detail := TeamDetail{
		Name:    team,
		Matches: AnnotateMatches(duals, team, lookup),
	}

	var confW, confL, nonW, nonL int
	for _, m := range detail.Matches {
		switch {
		case m.IsConferenceMatch && m.Won():
			confW++
		case m.IsConferenceMatch:
			confL++
		case m.Won():
			nonW++
		default:
			nonL++
		}
	}
	detail.Conference = NewRecord(confW, confL)
	detail.NonConference = NewRecord(nonW, nonL)
	detail.Overall = NewRecord(confW+nonW, confL+nonL)
	return detail
}

// MirrorConflict is a dual whose mirrored record, filed by the opponent,
// is missing or disagrees with it.
type MirrorConflict struct {
	Record DualResult
	Mirror *DualResult
	Reason string
}

// CrossCheckMirrors pairs each dual with the opponent's record of the same
// meet (same two schools, same date) and reports pairs that disagree on
// score or result. A dual counts as unmatched only when its opponent files
// results of its own. Aggregation never consults this.
func CrossCheckMirrors(duals []DualResult) []MirrorConflict {
	type key struct {
		school, opponent, date string
	}
	reporting := make(map[string]bool)
	byKey := make(map[key][]int)
	var keys []key
	for i, d := range duals {
		reporting[d.School] = true
		k := key{d.School, d.OpponentSchool, d.Date.String()}
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], i)
	}

	var conflicts []MirrorConflict
	done := make(map[key]bool)
	for _, k := range keys {
		if done[k] || k.school == k.opponent {
			continue
		}
		mk := key{k.opponent, k.school, k.date}
		done[k], done[mk] = true, true

		mine, theirs := byKey[k], byKey[mk]
		for j, i := range mine {
			if j >= len(theirs) {
				if reporting[k.opponent] {
					conflicts = append(conflicts, MirrorConflict{Record: duals[i], Reason: "no mirrored record"})
				}
				continue
			}
			a, b := duals[i], duals[theirs[j]]
			switch {
			case a.Score != b.OpponentScore || a.OpponentScore != b.Score:
				conflicts = append(conflicts, MirrorConflict{Record: a, Mirror: &b, Reason: "scores disagree"})
			case a.Won() == b.Won():
				conflicts = append(conflicts, MirrorConflict{Record: a, Mirror: &b, Reason: "results disagree"})
			}
		}
		for j := len(mine); j < len(theirs); j++ {
			conflicts = append(conflicts, MirrorConflict{Record: duals[theirs[j]], Reason: "no mirrored record"})
		}
	}
	return conflicts
}
