package templates

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/a-h/templ"
)

// TeamsPage is the full teams page: header, share button and the swappable
// view fragment.
func TeamsPage(data TeamsPageData) templ.Component {
	return Layout("Teams", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		err := html(w,
			`<div class="min-h-screen bg-gradient-to-br from-blue-50 to-indigo-100"><div class="container mx-auto px-4 py-8">`,
			`<div class="mb-8"><div class="flex justify-between items-start"><div>`,
			`<h1 class="text-4xl font-bold text-gray-900 mb-2">Team Results</h1>`,
			`<p class="text-gray-600">Select a team to view their dual meet results</p></div>`,
			`<button type="button" id="copy-link" data-copy-link class="flex items-center gap-2 px-4 py-2 bg-blue-600 text-white rounded-lg hover:bg-blue-700 transition-colors text-sm font-medium">Share</button>`,
			`</div></div>`,
			`<div id="teams-view">`,
		)
		if err != nil {
			return err
		}
		if err := TeamsView(data).Render(ctx, w); err != nil {
			return err
		}
		return html(w, `</div></div></div>`, teamsScript)
	}))
}

// TeamsView is the part of the teams page that changes with view state. It is
// served alone as a fragment when the page script swaps it in.
func TeamsView(data TeamsPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Status == StatusLoading {
			return html(w,
				`<div class="flex items-center justify-center py-16"><div class="text-center">`,
				`<div class="animate-spin rounded-full h-12 w-12 border-b-2 border-blue-600 mx-auto mb-4"></div>`,
				`<p class="text-gray-600">Loading team data...</p></div></div>`,
			)
		}
		if err := teamSelector(w, data); err != nil {
			return err
		}
		if data.Detail == nil {
			return nil
		}
		return teamDetail(w, *data.Detail)
	})
}

func selected(cond bool) string {
	if cond {
		return ` selected`
	}
	return ``
}

func teamSelector(w io.Writer, data TeamsPageData) error {
	err := html(w,
		`<div class="bg-white rounded-lg shadow-lg p-6 mb-8">`,
		`<label for="team-select" class="block text-sm font-medium text-gray-700 mb-2">Select Team</label>`,
		`<div class="flex flex-wrap gap-4 mb-4">`,
		`<div class="flex items-center gap-2"><label class="text-sm font-medium text-gray-700">Sort by:</label>`,
		`<select id="sort-select" data-field="sort" class="px-3 py-1 border border-gray-300 rounded-md text-sm text-gray-900">`,
		`<option value="winPercentage"`, selected(data.SortBy != "name"), `>Win %</option>`,
		`<option value="name"`, selected(data.SortBy == "name"), `>A-Z</option>`,
		`</select></div>`,
		`<div class="flex items-center gap-2"><label class="text-sm font-medium text-gray-700">Conference:</label>`,
		`<select id="conference-select" data-field="conference" class="px-3 py-1 border border-gray-300 rounded-md text-sm text-gray-900">`,
		`<option value="all"`, selected(data.Conference == "all"), `>All Conferences</option>`,
	)
	if err != nil {
		return err
	}
	conferences := data.Conferences
	if data.Conference != "" && data.Conference != "all" && !slices.Contains(conferences, data.Conference) {
		conferences = append(slices.Clip(conferences), data.Conference)
	}
	for _, c := range conferences {
		if err := html(w, `<option value="`, esc(c), `"`, selected(data.Conference == c), `>`, esc(c), `</option>`); err != nil {
			return err
		}
	}
	err = html(w,
		`</select></div></div>`,
		`<select id="team-select" data-field="team" class="w-full max-w-md px-3 py-2 border border-gray-300 rounded-md shadow-sm text-gray-900">`,
		`<option value="">Choose a team...</option>`,
	)
	if err != nil {
		return err
	}
	for _, t := range data.Teams {
		label := fmt.Sprintf("%s (%s, %s)", t.Name, record(t.Wins, t.Losses), pct(t.WinPercentage))
		if err := html(w, `<option value="`, esc(t.Name), `"`, selected(data.SelectedTeam == t.Name), `>`, esc(label), `</option>`); err != nil {
			return err
		}
	}
	// Keep a selected team that the filter hides, so the select matches the URL.
	listed := slices.ContainsFunc(data.Teams, func(t TeamOption) bool { return t.Name == data.SelectedTeam })
	if data.SelectedTeam != "" && !listed {
		if err := html(w, `<option value="`, esc(data.SelectedTeam), `" selected>`, esc(data.SelectedTeam), `</option>`); err != nil {
			return err
		}
	}
	if err := html(w, `</select>`); err != nil {
		return err
	}
	if data.Status == StatusDegraded {
		if err := html(w, `<p id="no-data" class="mt-4 text-sm text-gray-500">No team data is available right now.</p>`); err != nil {
			return err
		}
	}
	return html(w, `</div>`)
}

func teamDetail(w io.Writer, d TeamDetailView) error {
	if h := d.Header; h != nil {
		err := html(w,
			`<div id="team-header" class="bg-white rounded-lg shadow-lg p-6 mb-8"><div class="flex items-center justify-between"><div>`,
			`<h2 class="text-4xl font-bold text-gray-900 mb-2">`, esc(h.Name), `</h2>`,
			`<p class="text-xl text-gray-600">Conference: `, esc(h.Conference), `</p></div>`,
			`<div class="text-right"><p class="text-2xl font-semibold text-gray-900">`, record(h.Wins, h.Losses), `</p>`,
			`<p class="text-lg text-gray-600">`, pct(h.WinPercentage), `</p></div></div></div>`,
		)
		if err != nil {
			return err
		}
	}

	if len(d.Matches) > 0 && len(d.Records) > 0 {
		if err := html(w, `<div class="mb-8"><div class="grid grid-cols-1 lg:grid-cols-3 gap-6">`); err != nil {
			return err
		}
		for _, r := range d.Records {
			err := html(w,
				`<div class="stat-card bg-white rounded-lg shadow-lg p-6">`,
				`<h3 class="text-lg font-semibold text-gray-900 mb-4">`, esc(r.Label), `</h3>`,
				`<div class="grid grid-cols-2 gap-4"><div><h4 class="text-sm font-medium text-gray-500 mb-2">Record</h4>`,
				`<p class="record text-2xl font-bold text-gray-900"><span class="text-green-600">`, fmt.Sprint(r.Wins),
				`</span> - <span class="text-red-600">`, fmt.Sprint(r.Losses), `</span></p></div>`,
				`<div><h4 class="text-sm font-medium text-gray-500 mb-2">Win %</h4>`,
				`<p class="win-pct text-2xl font-bold text-blue-600">`, pct(r.WinPercentage), `</p></div></div></div>`,
			)
			if err != nil {
				return err
			}
		}
		if err := html(w, `</div></div>`); err != nil {
			return err
		}
	}

	plural := "s"
	if len(d.Matches) == 1 {
		plural = ""
	}
	err := html(w,
		`<div id="results" class="bg-white rounded-lg shadow-lg overflow-hidden">`,
		`<div class="px-6 py-4 border-b border-gray-200">`,
		`<h2 class="text-2xl font-semibold text-gray-900">`, esc(d.Name), ` Results</h2>`,
		`<p class="text-gray-600">`, fmt.Sprintf("%d dual meet%s this season", len(d.Matches), plural), `</p></div>`,
	)
	if err != nil {
		return err
	}

	if len(d.Matches) == 0 {
		return html(w, `<div class="no-results px-6 py-8 text-center text-gray-500">No results found for `, esc(d.Name), `</div></div>`)
	}

	err = html(w,
		`<div class="overflow-x-auto"><table class="min-w-full divide-y divide-gray-200"><thead class="bg-gray-50"><tr>`,
		`<th class="px-6 py-4 text-left text-sm font-semibold text-gray-900 uppercase tracking-wider">Date</th>`,
		`<th class="px-6 py-4 text-left text-sm font-semibold text-gray-900 uppercase tracking-wider">Opponent</th>`,
		`<th class="px-6 py-4 text-left text-sm font-semibold text-gray-900 uppercase tracking-wider">Location</th>`,
		`<th class="px-6 py-4 text-left text-sm font-semibold text-gray-900 uppercase tracking-wider">Score</th>`,
		`<th class="px-6 py-4 text-left text-sm font-semibold text-gray-900 uppercase tracking-wider">Non-D1</th>`,
		`<th class="px-6 py-4 text-left text-sm font-semibold text-gray-900 uppercase tracking-wider">Result</th>`,
		`</tr></thead><tbody class="bg-white divide-y divide-gray-200">`,
	)
	if err != nil {
		return err
	}
	for _, m := range d.Matches {
		if err := matchRow(w, m); err != nil {
			return err
		}
	}
	return html(w, `</tbody></table></div></div>`)
}

func matchRow(w io.Writer, m MatchRow) error {
	rowClass, confBadge := "hover:bg-gray-50", ""
	if m.Conference {
		rowClass += " bg-gray-50 conference-match"
		confBadge = `<span class="ml-2 inline-flex px-2 py-1 text-xs font-medium bg-blue-100 text-blue-800 rounded-full">Conference</span>`
	}
	d1Badge := `<span class="d1-badge inline-flex px-2 py-1 text-xs font-medium bg-orange-100 text-orange-800 rounded-full">Non-D1</span>`
	if m.D1 {
		d1Badge = `<span class="d1-badge inline-flex px-2 py-1 text-xs font-medium bg-gray-100 text-gray-800 rounded-full">D1</span>`
	}
	resultClass := "bg-red-100 text-red-800"
	if m.Won {
		resultClass = "bg-green-100 text-green-800"
	}
	return html(w,
		`<tr class="`, rowClass, `">`,
		`<td class="px-6 py-4 whitespace-nowrap text-sm text-gray-900">`, esc(m.Date), `</td>`,
		`<td class="opponent px-6 py-4 whitespace-nowrap text-sm text-gray-900">`, esc(m.Opponent), confBadge, `</td>`,
		`<td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">`, esc(m.Location), `</td>`,
		`<td class="score px-6 py-4 whitespace-nowrap text-sm text-gray-900"><span class="font-medium">`, fmt.Sprint(m.Score), `</span> - `, fmt.Sprint(m.OpponentScore), `</td>`,
		`<td class="px-6 py-4 whitespace-nowrap text-sm text-gray-900">`, d1Badge, `</td>`,
		`<td class="px-6 py-4 whitespace-nowrap"><span class="result inline-flex px-2 py-1 text-xs font-semibold rounded-full `, resultClass, `">`, esc(m.Result), `</span></td>`,
		`</tr>`,
	)
}

// teamsScript sends each select change to the server as a field/value edit
// on top of the address bar query, then swaps in the returned fragment and
// the canonical query. The select values are never read back as state: an
// option missing from a filtered list must not clear the URL. Each request
// takes a generation number; a response is applied only if no newer request
// has been issued since.
const teamsScript = `<script>
(function () {
  var generation = 0;
  var pending = null;

  function baseQuery() {
    return new URLSearchParams(pending !== null ? pending : window.location.search);
  }

  function update(field, value) {
    var gen = ++generation;
    var params = baseQuery();
    var next = baseQuery();
    next.set(field, value);
    pending = next.toString();
    params.set('field', field);
    params.set('value', value);
    fetch('/teams/view?' + params.toString())
      .then(function (resp) {
        if (!resp.ok) throw new Error('HTTP ' + resp.status);
        var query = resp.headers.get('X-View-Query') || '';
        return resp.text().then(function (body) { return { body: body, query: query }; });
      })
      .then(function (res) {
        if (gen !== generation) return;
        pending = null;
        document.getElementById('teams-view').innerHTML = res.body;
        history.replaceState(history.state, '', '/teams' + res.query);
      })
      .catch(function (err) {
        if (gen === generation) pending = null;
        console.error('Error loading team view:', err);
      });
  }

  document.addEventListener('change', function (e) {
    var field = e.target.getAttribute && e.target.getAttribute('data-field');
    if (field) update(field, e.target.value);
  });

  var copy = document.querySelector('[data-copy-link]');
  if (copy) {
    copy.addEventListener('click', function () {
      navigator.clipboard.writeText(window.location.href).then(function () {
        copy.textContent = 'Copied!';
        setTimeout(function () { copy.textContent = 'Share'; }, 2000);
      }).catch(function (err) { console.error('Failed to copy URL:', err); });
    });
  }
})();
</script>`
