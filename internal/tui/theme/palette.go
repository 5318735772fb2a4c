package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color

	GridLine     lipgloss.Color
	HourLine     lipgloss.Color
	TextOnAccent lipgloss.Color

	SidebarBg     lipgloss.Color
	SidebarBorder lipgloss.Color

	bg, fg  string
	isLight bool
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Warning:     lipgloss.Color(t.Warning),
		Error:       lipgloss.Color(t.Error),

		GridLine:     lipgloss.Color(blendColors(t.Bg, t.FgMuted, 0.25)),
		HourLine:     lipgloss.Color(blendColors(t.Bg, t.FgMuted, 0.55)),
		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),

		SidebarBg:     lipgloss.Color(t.SidebarBg),
		SidebarBorder: lipgloss.Color(t.SidebarBorder),

		bg:      t.Bg,
		fg:      t.Fg,
		isLight: isLight,
	}
}

// BlockFill returns the fill color of a block drawn in a schedule color.
func (p *Palette) BlockFill(hex string) lipgloss.Color {
	if p.isLight {
		return lipgloss.Color(blendColors(hex, p.bg, 0.35))
	}
	return lipgloss.Color(hex)
}

// BlockMuted returns the fill of a block whose schedule is not selected.
func (p *Palette) BlockMuted(hex string) lipgloss.Color {
	return lipgloss.Color(blendColors(hex, p.bg, 0.65))
}

// BlockRecent returns the emphasized fill of a just-committed block.
func (p *Palette) BlockRecent(hex string) lipgloss.Color {
	if p.isLight {
		return lipgloss.Color(blendColors(hex, "#000000", 0.15))
	}
	return lipgloss.Color(blendColors(hex, "#ffffff", 0.35))
}

// BlockText picks the readable text color on top of fill.
func (p *Palette) BlockText(fill lipgloss.Color) lipgloss.Color {
	return lipgloss.Color(chooseTextColor(string(fill), p.bg, p.fg))
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func parse(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, ok := parse(hex)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blendColors mixes a towards b by ratio. Invalid input returns a.
func blendColors(a, b string, ratio float64) string {
	ca, okA := parse(a)
	cb, okB := parse(b)
	if !okA || !okB {
		return a
	}
	ratio = max(0, min(1, ratio))
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}
