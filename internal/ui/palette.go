package ui

import (
	"github.com/nhath/ezchart/internal/config"
	"github.com/nhath/ezchart/internal/imageexport"
)

// paletteFromTheme draws exported images in the configured colors
func paletteFromTheme(t config.Theme) imageexport.Palette {
	p := imageexport.DefaultPalette()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Background, t.BgPrimary)
	set(&p.Card, t.BgSecondary)
	set(&p.Header, t.CardBg)
	set(&p.Border, t.BorderColor)
	set(&p.Text, t.TextPrimary)
	set(&p.Line, t.Accent)
	return p
}
