// Package pagectx captures a structured snapshot of the dashboard page
// so assistant replies can be grounded in what the user actually sees.
package pagectx

import (
	"fmt"
	"strings"
)

// NavLink is a navigation entry on the page.
type NavLink struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Element is a positioned UI element worth pointing the user at.
type Element struct {
	Label    string `json:"label"`
	Kind     string `json:"kind"` // card, chart, button, option, input
	Quadrant string `json:"quadrant"`
}

// Flags records the presence of coarse layout features.
type Flags struct {
	HasSidebar bool `json:"has_sidebar"`
	HasFilters bool `json:"has_filters"`
	HasCharts  bool `json:"has_charts"`
	HasSearch  bool `json:"has_search"`
}

// Snapshot is a point-in-time capture of the rendered page. It is
// recomputed fresh on every submitted turn and never cached.
type Snapshot struct {
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Headings []string  `json:"headings"`
	NavLinks []NavLink `json:"nav_links"`
	Elements []Element `json:"elements"`
	Flags    Flags     `json:"flags"`
}

// Serialize renders the snapshot into the plain-text form sent to the
// completion service as the pageDOM field.
func (s Snapshot) Serialize() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Page: %s (%s)\n", s.Title, s.URL))

	if len(s.Headings) > 0 {
		b.WriteString("Headings: ")
		b.WriteString(strings.Join(s.Headings, "; "))
		b.WriteString("\n")
	}

	if len(s.NavLinks) > 0 {
		b.WriteString("Navigation:\n")
		for _, link := range s.NavLinks {
			b.WriteString(fmt.Sprintf("- %s -> %s\n", link.Text, link.Href))
		}
	}

	if len(s.Elements) > 0 {
		b.WriteString("Visible elements:\n")
		for _, el := range s.Elements {
			b.WriteString(fmt.Sprintf("- %s (%s, %s)\n", el.Label, el.Kind, el.Quadrant))
		}
	}

	b.WriteString(fmt.Sprintf("Layout: sidebar=%s filters=%s charts=%s search=%s\n",
		yesNo(s.Flags.HasSidebar),
		yesNo(s.Flags.HasFilters),
		yesNo(s.Flags.HasCharts),
		yesNo(s.Flags.HasSearch)))

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
