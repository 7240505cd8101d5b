package badge

import (
	"strings"
	"testing"
)

func TestGenerate_ApproxMetrics(t *testing.T) {
	e := New(Approx(11))
	svg := e.Generate(Badge{Label: "lint", Value: "passing", Color: "#4c1"})

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg[:40])
	}
	if !strings.Contains(svg, ">lint<") || !strings.Contains(svg, ">passing<") {
		t.Fatal("label or value text missing")
	}
	if !strings.Contains(svg, `fill="#4c1"`) {
		t.Fatal("status color missing")
	}
	// Approximate metrics carry no font data to embed.
	if strings.Contains(svg, "@font-face") {
		t.Fatal("font-face emitted without font data")
	}
}

func TestGenerate_EscapesText(t *testing.T) {
	e := New(Approx(11))
	svg := e.Generate(Badge{Label: "a<b", Value: "c&d", Color: "#4c1"})

	if strings.Contains(svg, ">a<b<") || strings.Contains(svg, "c&d<") {
		t.Fatal("badge text not escaped")
	}
	if !strings.Contains(svg, "a&lt;b") || !strings.Contains(svg, "c&amp;d") {
		t.Fatal("escaped text missing")
	}
}

func TestTextWidth_Monotonic(t *testing.T) {
	m := Approx(11)
	if m.TextWidth("wide text here") <= m.TextWidth("hi") {
		t.Fatal("longer text not wider")
	}
	if m.TextWidth("") != 0 {
		t.Fatal("empty text has width")
	}
	// Narrow glyphs measure narrower than wide ones.
	if m.TextWidth("iii") >= m.TextWidth("mmm") {
		t.Fatal("glyph classes not differentiated")
	}
}

func TestStatusColor(t *testing.T) {
	if StatusColor("passing") != "#4c1" {
		t.Fatal("passing color wrong")
	}
	if StatusColor("warning") != "#dfb317" {
		t.Fatal("warning color wrong")
	}
	if StatusColor("failing") != "#e05d44" {
		t.Fatal("failing color wrong")
	}
	if StatusColor("unknown") != "#9f9f9f" {
		t.Fatal("fallback color wrong")
	}
}

func TestDetectFontFormat(t *testing.T) {
	if detectFontFormat([]byte("OTTOrest")) != "otf" {
		t.Fatal("OTTO magic not detected")
	}
	if detectFontFormat([]byte{0x00, 0x01, 0x00, 0x00}) != "ttf" {
		t.Fatal("ttf default lost")
	}
	if detectFontFormat(nil) != "ttf" {
		t.Fatal("short input should default to ttf")
	}
}
