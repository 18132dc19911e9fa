package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// html writes literal markup fragments in order, stopping at the first error.
func html(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

func esc(s string) string { return templ.EscapeString(s) }

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v) }

func record(wins, losses int) string { return fmt.Sprintf("%d-%d", wins, losses) }

// Layout wraps a page body with the document shell and navigation.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		err := html(w,
			`<!doctype html><html lang="en"><head><meta charset="UTF-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1.0">`,
			`<title>`, esc(title), ` - MatAnalytics</title>`,
			`<meta name="description" content="Zero-cost dashboards for NCAA D1 wrestling stats.">`,
			`<script src="https://cdn.tailwindcss.com"></script></head>`,
			`<body class="antialiased">`,
			`<nav class="bg-white shadow-sm border-b"><div class="container mx-auto px-4">`,
			`<div class="flex justify-between items-center h-16">`,
			`<a href="/" class="text-xl font-bold text-gray-900">🏆 MatAnalytics</a>`,
			`<div class="flex space-x-6">`,
			`<a href="/" class="text-gray-600 hover:text-gray-900 transition-colors">Home</a>`,
			`<a href="/teams" class="text-gray-600 hover:text-gray-900 transition-colors">Teams</a>`,
			`</div></div></div></nav>`,
		)
		if err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		return html(w, `</body></html>`)
	})
}

// Home is the landing page.
func Home(data HomePageData) templ.Component {
	return Layout("Home", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		err := html(w,
			`<div class="min-h-screen bg-gradient-to-br from-blue-50 to-indigo-100"><div class="container mx-auto px-4 py-16"><div class="text-center">`,
			`<h1 class="text-6xl font-bold text-gray-900 mb-6">🏆 MatAnalytics</h1>`,
			`<p class="text-xl text-gray-600 mb-8 max-w-2xl mx-auto">Zero-cost dashboards for NCAA D1 wrestling stats.</p>`,
			`<div class="bg-white rounded-lg shadow-lg p-8 max-w-4xl mx-auto">`,
		)
		if err != nil {
			return err
		}

		switch data.Status {
		case StatusReady:
			err = html(w,
				`<h2 class="text-3xl font-semibold text-gray-800 mb-4">`, esc(data.Season), ` Season</h2>`,
				`<p id="season-summary" class="text-lg text-gray-600 mb-6">`,
				fmt.Sprintf("%d D1 teams across %d conferences, %d dual results.", data.TeamCount, data.ConferenceCount, data.DualCount),
				`</p>`,
				`<p id="loaded-at" class="text-sm text-gray-500 mb-6">`,
				fmt.Sprintf("%d schools in the directory. Updated %s.", data.SchoolCount, data.LoadedAt.Format("Jan 2, 2006 3:04 PM")),
				`</p>`,
			)
		case StatusLoading:
			err = html(w, `<p class="text-lg text-gray-600 mb-6">Loading team data...</p>`)
		default:
			err = html(w, `<p id="no-data" class="text-lg text-gray-600 mb-6">No data is available right now.</p>`)
		}
		if err != nil {
			return err
		}

		return html(w,
			`<div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-4 gap-4 mt-8">`,
			`<div class="bg-blue-50 p-4 rounded-lg"><h3 class="font-semibold text-blue-800">Wrestlers</h3><p class="text-sm text-blue-600">Individual stats &amp; performance</p></div>`,
			`<a href="/teams" class="bg-green-50 p-4 rounded-lg block"><h3 class="font-semibold text-green-800">Teams</h3><p class="text-sm text-green-600">Team rankings &amp; comparisons</p></a>`,
			`<div class="bg-purple-50 p-4 rounded-lg"><h3 class="font-semibold text-purple-800">Weights</h3><p class="text-sm text-purple-600">Weight class analysis</p></div>`,
			`<div class="bg-orange-50 p-4 rounded-lg"><h3 class="font-semibold text-orange-800">Duals</h3><p class="text-sm text-orange-600">Match results &amp; history</p></div>`,
			`</div></div></div></div></div>`,
		)
	}))
}
