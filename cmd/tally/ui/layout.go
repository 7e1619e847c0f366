package ui

import (
	"sort"
	"strings"

	"tally/internal/input"

	"github.com/charmbracelet/lipgloss"
)

// zone is a clickable rectangle; depth orders nested zones innermost first.
type zone struct {
	target         input.Target
	x0, y0, x1, y1 int // half-open
	depth          int
}

func (z zone) contains(x, y int) bool {
	return x >= z.x0 && x < z.x1 && y >= z.y0 && y < z.y1
}

// canvas stacks horizontally centered blocks and records where each
// clickable piece ends up, so hit testing uses the exact rendered geometry.
type canvas struct {
	width int
	lines []string
	zones []zone
}

func newCanvas(width int) *canvas {
	return &canvas{width: width}
}

// block appends a centered block and returns its top-left corner.
func (c *canvas) block(s string) (x, y int) {
	w := lipgloss.Width(s)
	x = (c.width - w) / 2
	if x < 0 {
		x = 0
	}
	y = len(c.lines)
	pad := strings.Repeat(" ", x)
	for _, line := range strings.Split(s, "\n") {
		c.lines = append(c.lines, pad+line)
	}
	return x, y
}

func (c *canvas) blank() {
	c.lines = append(c.lines, "")
}

func (c *canvas) mark(t input.Target, x, y, w, h, depth int) {
	c.zones = append(c.zones, zone{target: t, x0: x, y0: y, x1: x + w, y1: y + h, depth: depth})
}

// row appends rendered pieces side by side separated by gap columns and
// marks each piece that has a target.
func (c *canvas) row(gap int, depth int, pieces ...piece) {
	parts := make([]string, 0, 2*len(pieces))
	spacer := strings.Repeat(" ", gap)
	for i, p := range pieces {
		if i > 0 {
			parts = append(parts, spacer)
		}
		parts = append(parts, p.view)
	}
	x, y := c.block(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	for _, p := range pieces {
		c.mark(p.target, x, y, lipgloss.Width(p.view), lipgloss.Height(p.view), depth)
		x += lipgloss.Width(p.view) + gap
	}
}

type piece struct {
	target input.Target
	view   string
}

// place centers the canvas vertically in height rows and shifts zones to match.
func (c *canvas) place(height int) (string, []zone) {
	top := (height - len(c.lines)) / 2
	if top < 0 {
		top = 0
	}
	lines := make([]string, 0, top+len(c.lines))
	for i := 0; i < top; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, c.lines...)

	zones := make([]zone, len(c.zones))
	for i, z := range c.zones {
		z.y0 += top
		z.y1 += top
		zones[i] = z
	}
	return strings.Join(lines, "\n"), zones
}

// hitPath lists the targets under (x, y) innermost first. The surface is
// always the outermost target.
func hitPath(zones []zone, x, y int) []input.Target {
	var hits []zone
	for _, z := range zones {
		if z.contains(x, y) {
			hits = append(hits, z)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].depth > hits[j].depth })

	path := make([]input.Target, 0, len(hits)+1)
	for _, z := range hits {
		path = append(path, z.target)
	}
	return append(path, input.TargetSurface)
}
