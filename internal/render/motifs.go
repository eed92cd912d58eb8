package render

import (
	"fmt"
	"strings"
)

// box is the rectangle a motif is drawn into.
type box struct {
	X, Y, W, H int
}

type motifFunc func(b box, th Theme) string

var motifs = map[Motif]motifFunc{
	MotifTree:         treeMotif,
	MotifStack:        stackMotif,
	MotifLayered:      layeredMotif,
	MotifTable:        tableMotif,
	MotifProcessState: processStateMotif,
	MotifNetwork:      networkMotif,
	MotifClassDiagram: classDiagramMotif,
	MotifGeneric:      genericMotif,
}

func drawMotif(m Motif, b box, th Theme) string {
	fn, ok := motifs[m]
	if !ok {
		fn = genericMotif
	}
	return fn(b, th)
}

// treeMotif draws a three-level binary tree.
func treeMotif(b box, th Theme) string {
	var sb strings.Builder
	cx := b.X + b.W/2
	levels := [][]int{
		{cx},
		{b.X + b.W/4, b.X + 3*b.W/4},
		{b.X + b.W/8, b.X + 3*b.W/8, b.X + 5*b.W/8, b.X + 7*b.W/8},
	}
	ys := []int{b.Y + 40, b.Y + b.H/2, b.Y + b.H - 40}

	for lvl := 0; lvl < len(levels)-1; lvl++ {
		for i, px := range levels[lvl] {
			for _, child := range levels[lvl+1][2*i : 2*i+2] {
				fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="3" opacity="0.7"/>`, px, ys[lvl], child, ys[lvl+1], th.AccentAlt)
			}
		}
	}
	for lvl, xs := range levels {
		for _, x := range xs {
			fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="18" fill="%s" stroke="#ffffff" stroke-width="2"/>`, x, ys[lvl], th.Accent)
		}
	}
	return sb.String()
}

// stackMotif draws four stacked frames with a push arrow.
func stackMotif(b box, th Theme) string {
	var sb strings.Builder
	const frames = 4
	fw, fh := b.W-80, 44
	x := b.X + 20
	for i := 0; i < frames; i++ {
		y := b.Y + b.H - 30 - (i+1)*(fh+10)
		fill := th.Accent
		if i%2 == 1 {
			fill = th.AccentAlt
		}
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" rx="8" fill="%s" opacity="0.85"/>`, x, y, fw, fh, fill)
	}
	ax := x + fw + 25
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#ffffff" stroke-width="3"/>`, ax, b.Y+b.H-40, ax, b.Y+40)
	fmt.Fprintf(&sb, `<polygon points="%d,%d %d,%d %d,%d" fill="#ffffff"/>`, ax-10, b.Y+50, ax+10, b.Y+50, ax, b.Y+30)
	return sb.String()
}

// layeredMotif draws client, service and data tiers joined by connectors.
func layeredMotif(b box, th Theme) string {
	var sb strings.Builder
	const tiers = 3
	tierH := (b.H - 40) / tiers
	for i := 0; i < tiers; i++ {
		inset := i * 15
		y := b.Y + 10 + i*tierH
		fill := th.Accent
		if i == 1 {
			fill = th.AccentAlt
		}
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" rx="10" fill="%s" opacity="0.8"/>`, b.X+inset, y, b.W-2*inset, tierH-30, fill)
		if i < tiers-1 {
			cx := b.X + b.W/2
			fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#ffffff" stroke-width="3" stroke-dasharray="6 4"/>`, cx, y+tierH-30, cx, y+tierH+10)
		}
	}
	return sb.String()
}

// tableMotif draws a header row and a 4x3 grid.
func tableMotif(b box, th Theme) string {
	var sb strings.Builder
	const rows, cols = 5, 3
	cw := (b.W - 20) / cols
	rh := (b.H - 40) / rows
	x0, y0 := b.X+10, b.Y+20
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fill := "#ffffff"
			opacity := "0.15"
			if r == 0 {
				fill, opacity = th.Accent, "0.9"
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" opacity="%s" stroke="%s" stroke-width="1.5"/>`, x0+c*cw, y0+r*rh, cw, rh, fill, opacity, th.AccentAlt)
		}
	}
	return sb.String()
}

// processStateMotif draws the new → ready → running → waiting → terminated cycle.
func processStateMotif(b box, th Theme) string {
	var sb strings.Builder
	type node struct {
		x, y  int
		label string
	}
	nodes := []node{
		{b.X + 40, b.Y + 40, "new"},
		{b.X + b.W - 40, b.Y + 40, "ready"},
		{b.X + b.W - 40, b.Y + b.H - 40, "run"},
		{b.X + 40, b.Y + b.H - 40, "wait"},
		{b.X + b.W/2, b.Y + b.H/2, "exit"},
	}
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 1}, {2, 4}}
	for _, e := range edges {
		a, z := nodes[e[0]], nodes[e[1]]
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2.5" opacity="0.8"/>`, a.x, a.y, z.x, z.y, th.AccentAlt)
	}
	for _, n := range nodes {
		fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="30" fill="%s" stroke="#ffffff" stroke-width="2"/>`, n.x, n.y, th.Accent)
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-family="Arial, sans-serif" font-size="13" fill="#1a1a2e" text-anchor="middle">%s</text>`, n.x, n.y+5, n.label)
	}
	return sb.String()
}

// networkMotif draws a hexagonal ring of hosts around a router.
func networkMotif(b box, th Theme) string {
	var sb strings.Builder
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	// Precomputed unit hexagon offsets (x100) so output never depends on float formatting.
	offsets := [][2]int{{100, 0}, {50, 87}, {-50, 87}, {-100, 0}, {-50, -87}, {50, -87}}
	radius := b.W/2 - 30
	if h := b.H/2 - 30; h < radius {
		radius = h
	}
	for i, o := range offsets {
		x := cx + o[0]*radius/100
		y := cy + o[1]*radius/100
		next := offsets[(i+1)%len(offsets)]
		nx := cx + next[0]*radius/100
		ny := cy + next[1]*radius/100
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2" opacity="0.6"/>`, x, y, cx, cy, th.AccentAlt)
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1.5" opacity="0.4"/>`, x, y, nx, ny, th.Accent)
	}
	for _, o := range offsets {
		fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="16" fill="%s"/>`, cx+o[0]*radius/100, cy+o[1]*radius/100, th.Accent)
	}
	fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="44" height="44" rx="8" fill="%s" stroke="#ffffff" stroke-width="2"/>`, cx-22, cy-22, th.AccentAlt)
	return sb.String()
}

// classDiagramMotif draws a parent class with two subclasses.
func classDiagramMotif(b box, th Theme) string {
	var sb strings.Builder
	cw, ch := 110, 90
	parent := box{b.X + (b.W-cw)/2, b.Y + 10, cw, ch}
	children := []box{
		{b.X + 5, b.Y + b.H - ch - 10, cw, ch},
		{b.X + b.W - cw - 5, b.Y + b.H - ch - 10, cw, ch},
	}
	for _, c := range children {
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#ffffff" stroke-width="2"/>`, c.X+c.W/2, c.Y, parent.X+parent.W/2, parent.Y+parent.H+12)
	}
	px, py := parent.X+parent.W/2, parent.Y+parent.H
	fmt.Fprintf(&sb, `<polygon points="%d,%d %d,%d %d,%d" fill="none" stroke="#ffffff" stroke-width="2"/>`, px-10, py+14, px+10, py+14, px, py)
	for i, c := range append([]box{parent}, children...) {
		fill := th.AccentAlt
		if i == 0 {
			fill = th.Accent
		}
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" rx="6" fill="%s" opacity="0.9"/>`, c.X, c.Y, c.W, c.H, fill)
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#1a1a2e" stroke-width="1.5"/>`, c.X, c.Y+28, c.X+c.W, c.Y+28)
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#1a1a2e" stroke-width="1.5"/>`, c.X, c.Y+58, c.X+c.W, c.Y+58)
	}
	return sb.String()
}

// genericMotif draws a 3x3 grid of dots with a highlighted diagonal.
func genericMotif(b box, th Theme) string {
	var sb strings.Builder
	step := b.W / 4
	for r := 1; r <= 3; r++ {
		for c := 1; c <= 3; c++ {
			fill, rad := th.AccentAlt, 12
			if r == c {
				fill, rad = th.Accent, 20
			}
			fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="%d" fill="%s" opacity="0.85"/>`, b.X+c*step, b.Y+r*b.H/4, rad, fill)
		}
	}
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#ffffff" stroke-width="2" opacity="0.5"/>`, b.X+step, b.Y+b.H/4, b.X+3*step, b.Y+3*b.H/4)
	return sb.String()
}
