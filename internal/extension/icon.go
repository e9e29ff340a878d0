package extension

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

var (
	arrowColor  = color.RGBA{R: 31, G: 120, B: 225, A: 255}
	cookieColor = color.RGBA{R: 200, G: 170, B: 100, A: 255}
	crumbColor  = color.RGBA{R: 139, G: 69, B: 19, A: 255} // saddlebrown
)

// Icon draws the 48x48 toolbar icon: a redirect arrow above a cookie.
// Coordinates are laid out on a 48 px grid and scaled to size.
func Icon(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	s := func(v float64) float64 { return v * float64(size) / 48 }

	// arrow shaft and head
	fillRect(img, s(6), s(20), s(38), s(28), arrowColor)
	fillTriangle(img, [3][2]float64{{s(32), s(20)}, {s(38), s(24)}, {s(32), s(28)}}, arrowColor)

	// cookie body with outline, then crumbs
	fillEllipse(img, s(12), s(32), s(28), s(44), crumbColor)
	fillEllipse(img, s(15), s(35), s(25), s(41), cookieColor)
	fillEllipse(img, s(17), s(36), s(19), s(38), crumbColor)
	fillEllipse(img, s(22), s(39), s(24), s(41), crumbColor)
	fillEllipse(img, s(25), s(35), s(27), s(37), crumbColor)

	return img
}

// IconPNG encodes Icon(size) as PNG.
func IconPNG(size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Icon(size)); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	return buf.Bytes(), nil
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	forEachPixel(img, func(x, y float64) bool {
		return x >= x0 && x <= x1 && y >= y0 && y <= y1
	}, c)
}

func fillEllipse(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	cx, cy := (x0+x1)/2, (y0+y1)/2
	rx, ry := (x1-x0)/2, (y1-y0)/2
	if rx <= 0 || ry <= 0 {
		return
	}
	forEachPixel(img, func(x, y float64) bool {
		dx, dy := (x-cx)/rx, (y-cy)/ry
		return dx*dx+dy*dy <= 1
	}, c)
}

func fillTriangle(img *image.RGBA, pts [3][2]float64, c color.RGBA) {
	edge := func(a, b [2]float64, x, y float64) float64 {
		return (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
	}
	forEachPixel(img, func(x, y float64) bool {
		d0 := edge(pts[0], pts[1], x, y)
		d1 := edge(pts[1], pts[2], x, y)
		d2 := edge(pts[2], pts[0], x, y)
		hasNeg := d0 < 0 || d1 < 0 || d2 < 0
		hasPos := d0 > 0 || d1 > 0 || d2 > 0
		return !(hasNeg && hasPos)
	}, c)
}

// forEachPixel paints every pixel whose centre satisfies inside.
func forEachPixel(img *image.RGBA, inside func(x, y float64) bool, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if inside(float64(x)+0.5, float64(y)+0.5) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
