package pagectx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Collector produces a fresh snapshot of the current page.
type Collector interface {
	Capture(ctx context.Context) (Snapshot, error)
}

// StaticCollector returns a fixed snapshot. Used when the client runs
// without an attached browser and in tests.
type StaticCollector struct {
	Snapshot Snapshot
}

// Capture returns the configured snapshot unchanged.
func (c StaticCollector) Capture(ctx context.Context) (Snapshot, error) {
	return c.Snapshot, nil
}

// capturePayload is the raw shape returned by the injected script.
// Quadrants are derived in Go from the reported geometry.
type capturePayload struct {
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Viewport Size      `json:"viewport"`
	Headings []string  `json:"headings"`
	NavLinks []NavLink `json:"nav_links"`
	Elements []struct {
		Label string `json:"label"`
		Kind  string `json:"kind"`
		Box   Rect   `json:"box"`
	} `json:"elements"`
	Flags Flags `json:"flags"`
}

// captureJS walks the live document and reports text, geometry, and
// presence flags. Absent sections come back as empty arrays, never errors.
const captureJS = `
() => {
	const text = (el) => (el.innerText || '').replace(/\s+/g, ' ').trim();

	const headings = [];
	document.querySelectorAll('h1, h2, h3').forEach((h) => {
		const t = text(h);
		if (t) headings.push(t.substring(0, 80));
	});

	const navLinks = [];
	document.querySelectorAll('nav a[href], [role="navigation"] a[href]').forEach((a) => {
		const t = text(a);
		if (t) navLinks.push({ text: t.substring(0, 60), href: a.getAttribute('href') });
	});

	const kinds = {
		card: '.card, [class*="card"]',
		chart: 'canvas, svg.recharts-surface, [class*="chart"]',
		button: 'button, [role="button"]',
		option: 'select, [role="combobox"]',
		input: 'input:not([type="hidden"]), textarea'
	};

	const elements = [];
	Object.entries(kinds).forEach(([kind, selector]) => {
		document.querySelectorAll(selector).forEach((el) => {
			if (elements.length >= 40) return;
			const rect = el.getBoundingClientRect();
			if (rect.width === 0 || rect.height === 0) return;
			const label = text(el).substring(0, 60) ||
				el.getAttribute('aria-label') || el.placeholder || '';
			if (!label) return;
			elements.push({
				label: label,
				kind: kind,
				box: { x: rect.x, y: rect.y, width: rect.width, height: rect.height }
			});
		});
	});

	return {
		title: document.title,
		url: window.location.href,
		viewport: { width: window.innerWidth, height: window.innerHeight },
		headings: headings,
		nav_links: navLinks,
		elements: elements,
		flags: {
			has_sidebar: !!document.querySelector('aside, [class*="sidebar"]'),
			has_filters: !!document.querySelector('[class*="filter"], select'),
			has_charts: !!document.querySelector('canvas, svg.recharts-surface'),
			has_search: !!document.querySelector('input[type="search"], [class*="search"] input')
		}
	};
}
`

// RodCollector captures snapshots from a live browser page.
type RodCollector struct {
	browser *rod.Browser
	page    *rod.Page
}

// NewRodCollector connects to a browser and opens the dashboard page.
func NewRodCollector(dashboardURL string) (*RodCollector, error) {
	browser := rod.New()
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: dashboardURL})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("open dashboard page: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		slog.Warn("pagectx_wait_load_failed", "error", err)
	}

	slog.Info("pagectx_collector_ready", "url", dashboardURL)
	return &RodCollector{browser: browser, page: page}, nil
}

// Capture evaluates the capture script on the page and converts the
// reported geometry into quadrant placements.
func (c *RodCollector) Capture(ctx context.Context) (Snapshot, error) {
	result, err := c.page.Context(ctx).Eval(captureJS)
	if err != nil {
		return Snapshot{}, fmt.Errorf("evaluate capture script: %w", err)
	}

	raw, err := json.Marshal(result.Value.Val())
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode capture result: %w", err)
	}

	var payload capturePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Snapshot{}, fmt.Errorf("decode capture result: %w", err)
	}

	return buildSnapshot(payload), nil
}

// Close shuts down the attached browser.
func (c *RodCollector) Close() error {
	return c.browser.Close()
}

func buildSnapshot(payload capturePayload) Snapshot {
	snap := Snapshot{
		Title:    payload.Title,
		URL:      payload.URL,
		Headings: payload.Headings,
		NavLinks: payload.NavLinks,
		Flags:    payload.Flags,
	}

	for _, el := range payload.Elements {
		snap.Elements = append(snap.Elements, Element{
			Label:    el.Label,
			Kind:     el.Kind,
			Quadrant: Quadrant(el.Box, payload.Viewport),
		})
	}

	slog.Debug("pagectx_snapshot_built",
		"headings", len(snap.Headings),
		"nav_links", len(snap.NavLinks),
		"elements", len(snap.Elements))

	return snap
}
