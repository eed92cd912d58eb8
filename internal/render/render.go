// Package render turns study-card metadata into a self-contained SVG document.
// Rendering is a pure function of its input: no I/O and no hidden state.
package render

import (
	"fmt"
	"html"
	"strings"
)

// Canvas size of every rendered card.
const (
	CanvasWidth  = 1200
	CanvasHeight = 800
)

// ContentType of the rendered markup.
const ContentType = "image/svg+xml"

const (
	marginX = 60

	cardY      = 190
	cardWidth  = 255
	cardHeight = 72
	cardGap    = 20
	cardRunes  = 24

	codeY          = 290
	codeWidth      = 780
	codePanelBase  = 56
	codeLineHeight = 24

	tipY      = 640
	tipHeight = 110
	tipRunes  = 92

	titleRunes    = 44
	subtitleRunes = 80
)

var cardPalette = [4]string{"#ff7675", "#fdcb6e", "#55efc4", "#74b9ff"}

// Render produces the SVG markup for m. Identical metadata always yields
// byte-identical output.
func Render(m ImageMetadata) []byte {
	th := ThemeFor(m.Category)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, CanvasWidth, CanvasHeight, CanvasWidth, CanvasHeight)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, `<defs><linearGradient id="bg" x1="0" y1="0" x2="1" y2="1"><stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient></defs>`, th.GradientFrom, th.GradientTo)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="url(#bg)"/>`, CanvasWidth, CanvasHeight)
	sb.WriteString("\n")

	writeHeader(&sb, m, th)
	writeConceptCards(&sb, m.KeyConcepts)
	writeCodeBlock(&sb, CodeLines(m.CodeSnippet), th)

	sb.WriteString(`<g class="motif">`)
	sb.WriteString(drawMotif(th.Motif, box{X: 880, Y: codeY, W: 260, H: 300}, th))
	sb.WriteString("</g>\n")

	writeTipBanner(&sb, m.InterviewTip, th)

	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

// escape makes free text safe to embed in SVG text and attribute positions.
// It replaces the five reserved characters & < > " '.
func escape(s string) string {
	return html.EscapeString(s)
}

func writeHeader(sb *strings.Builder, m ImageMetadata, th Theme) {
	fmt.Fprintf(sb, `<text x="%d" y="105" font-size="48">%s</text>`, marginX, th.Icon)
	sb.WriteString("\n")
	fmt.Fprintf(sb, `<text x="%d" y="100" font-family="Arial, sans-serif" font-size="44" font-weight="bold" fill="#ffffff">%s</text>`, marginX+70, escape(clip(m.Title, titleRunes)))
	sb.WriteString("\n")
	fmt.Fprintf(sb, `<text x="%d" y="145" font-family="Arial, sans-serif" font-size="22" fill="%s">%s</text>`, marginX+70, th.Accent, escape(clip(m.Subtitle, subtitleRunes)))
	sb.WriteString("\n")
}

// writeConceptCards lays out up to MaxConcepts cards in one row, cycling the
// palette by index.
func writeConceptCards(sb *strings.Builder, concepts []string) {
	if len(concepts) > MaxConcepts {
		concepts = concepts[:MaxConcepts]
	}
	for i, c := range concepts {
		x := marginX + i*(cardWidth+cardGap)
		color := cardPalette[i%len(cardPalette)]
		fmt.Fprintf(sb, `<rect x="%d" y="%d" width="%d" height="%d" rx="14" fill="#ffffff" opacity="0.12" stroke="%s" stroke-width="2"/>`, x, cardY, cardWidth, cardHeight, color)
		fmt.Fprintf(sb, `<rect x="%d" y="%d" width="8" height="%d" rx="4" fill="%s"/>`, x, cardY, cardHeight, color)
		fmt.Fprintf(sb, `<text x="%d" y="%d" font-family="Arial, sans-serif" font-size="20" font-weight="bold" fill="#ffffff" text-anchor="middle">%s</text>`, x+cardWidth/2, cardY+cardHeight/2+7, escape(clip(c, cardRunes)))
		sb.WriteString("\n")
	}
}

// CodePanelHeight is the height of a code panel holding n lines.
func CodePanelHeight(n int) int {
	if n < 1 {
		n = 1
	}
	return codePanelBase + n*codeLineHeight
}

func writeCodeBlock(sb *strings.Builder, lines []string, th Theme) {
	if len(lines) == 0 {
		lines = []string{"// think it through, then code it"}
	}
	h := CodePanelHeight(len(lines))
	fmt.Fprintf(sb, `<rect x="%d" y="%d" width="%d" height="%d" rx="12" fill="#0d1117" opacity="0.92"/>`, marginX, codeY, codeWidth, h)
	for i, dot := range []string{"#ff5f56", "#ffbd2e", "#27c93f"} {
		fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="6" fill="%s"/>`, marginX+22+i*20, codeY+20, dot)
	}
	sb.WriteString("\n")
	for i, l := range lines {
		y := codeY + 50 + i*codeLineHeight
		fmt.Fprintf(sb, `<text x="%d" y="%d" font-family="Consolas, monospace" font-size="14" fill="#6e7681" text-anchor="end">%d</text>`, marginX+38, y, i+1)
		fmt.Fprintf(sb, `<text x="%d" y="%d" font-family="Consolas, monospace" font-size="16" fill="%s" xml:space="preserve">%s</text>`, marginX+52, y, th.Accent, escape(l))
		sb.WriteString("\n")
	}
}

func writeTipBanner(sb *strings.Builder, tip string, th Theme) {
	width := CanvasWidth - 2*marginX
	fmt.Fprintf(sb, `<rect x="%d" y="%d" width="%d" height="%d" rx="16" fill="%s" opacity="0.18" stroke="%s" stroke-width="2"/>`, marginX, tipY, width, tipHeight, th.AccentAlt, th.AccentAlt)
	fmt.Fprintf(sb, `<text x="%d" y="%d" font-family="Arial, sans-serif" font-size="20" font-weight="bold" fill="%s">💡 Interview Tip</text>`, marginX+24, tipY+36, th.Accent)
	sb.WriteString("\n")

	lines := wrapWords(tip, tipRunes)
	if len(lines) > 2 {
		lines = lines[:2]
		lines[1] = clip(lines[1]+" ...", tipRunes)
	}
	for i, l := range lines {
		fmt.Fprintf(sb, `<text x="%d" y="%d" font-family="Arial, sans-serif" font-size="18" fill="#ffffff">%s</text>`, marginX+24, tipY+66+i*26, escape(l))
		sb.WriteString("\n")
	}
}
