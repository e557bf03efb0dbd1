package imageexport

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nhath/ezchart/internal/diagram"
)

func writeRaster(w io.Writer, d *diagram.Diagram, l layout, f Format, p rgbaPalette) error {
	img := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.background), image.Point{}, draw.Src)

	for _, e := range l.edges {
		a, b := l.boxes[e.from].center, l.boxes[e.to].center
		drawLine(img, a[0], a[1], b[0], b[1], p.line)
	}

	face := basicfont.Face7x13
	for _, b := range l.boxes {
		rect := image.Rect(b.x, b.y, b.x+b.w, b.y+b.h)
		draw.Draw(img, rect, image.NewUniform(p.border), image.Point{}, draw.Src)
		draw.Draw(img, rect.Inset(1), image.NewUniform(p.card), image.Point{}, draw.Src)
		header := image.Rect(b.x+1, b.y+1, b.x+b.w-1, b.y+lineHeight+padding)
		draw.Draw(img, header, image.NewUniform(p.header), image.Point{}, draw.Src)

		dr := &font.Drawer{Dst: img, Src: image.NewUniform(p.text), Face: face}
		baseline := b.y + padding + face.Ascent - 2
		dr.Dot = fixed.P(b.x+padding, baseline)
		dr.DrawString(b.title)
		for i, line := range b.lines {
			dr.Dot = fixed.P(b.x+padding, baseline+(i+1)*lineHeight+padding/2)
			dr.DrawString(line)
		}
	}

	if f == JPEG {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	}
	return png.Encode(w, img)
}

// drawLine is Bresenham over the full octant range
func drawLine(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
