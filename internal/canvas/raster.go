package canvas

import (
	"fmt"
	"image"
	imgcolor "image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/jbeda/geom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/inamate/sketchpad/internal/color"
	"github.com/inamate/sketchpad/internal/geo"
)

var goRegular = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// Raster is a Surface backed by an RGBA image. Strokes are antialiased with
// golang.org/x/image/vector and text is set in Go Regular at the pixel size of
// the current font. The font family is ignored.
type Raster struct {
	img *image.RGBA
	rz  *vector.Rasterizer

	stroke    imgcolor.RGBA
	lineWidth float64
	fontSpec  string
	faces     map[float64]font.Face

	subpaths [][]geo.Point
}

func NewRaster(w, h float64) *Raster {
	r := &Raster{
		stroke:    imgcolor.RGBA{A: 255},
		lineWidth: 1,
		fontSpec:  "10px sans-serif",
		faces:     make(map[float64]font.Face),
	}
	r.SetSize(w, h)
	return r
}

// Image returns the backing image. It is not a copy.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Size() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (r *Raster) SetSize(w, h float64) {
	iw, ih := int(clampSide(w)), int(clampSide(h))
	r.img = image.NewRGBA(image.Rect(0, 0, iw, ih))
	r.rz = vector.NewRasterizer(iw, ih)
	r.subpaths = nil
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	rect := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(r.img, rect.Intersect(r.img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) BeginPath() {
	r.subpaths = nil
}

func (r *Raster) MoveTo(x, y float64) {
	r.subpaths = append(r.subpaths, []geo.Point{geo.NewPoint(x, y)})
}

func (r *Raster) LineTo(x, y float64) {
	if len(r.subpaths) == 0 {
		r.MoveTo(x, y)
		return
	}
	last := len(r.subpaths) - 1
	r.subpaths[last] = append(r.subpaths[last], geo.NewPoint(x, y))
}

func (r *Raster) Arc(x, y, radius, start, end float64, ccw bool) {
	pts := arcPoints(x, y, radius, start, end, ccw)
	if len(r.subpaths) == 0 {
		r.subpaths = append(r.subpaths, nil)
	}
	last := len(r.subpaths) - 1
	r.subpaths[last] = append(r.subpaths[last], pts...)
}

func (r *Raster) ClosePath() {
	if len(r.subpaths) == 0 {
		return
	}
	last := r.subpaths[len(r.subpaths)-1]
	if len(last) == 0 {
		return
	}
	first := last[0]
	r.subpaths[len(r.subpaths)-1] = append(last, first)
	r.subpaths = append(r.subpaths, []geo.Point{first})
}

func (r *Raster) SetStrokeStyle(c string) {
	// Unparseable colors are ignored, as a browser ignores them.
	if rgba, err := color.RGBA(c); err == nil {
		r.stroke = rgba
	}
}

func (r *Raster) SetLineWidth(w float64) {
	if w > 0 {
		r.lineWidth = w
	}
}

func (r *Raster) SetFont(f string) {
	r.fontSpec = f
}

func (r *Raster) Stroke() {
	src := image.NewUniform(r.stroke)
	for _, sp := range r.subpaths {
		for i := 1; i < len(sp); i++ {
			r.strokeSegment(sp[i-1], sp[i], src)
		}
	}
}

// strokeSegment fills the lineWidth wide quad around p-q. The rasterizer only
// covers the quad's bounding box.
func (r *Raster) strokeSegment(p, q geo.Point, src image.Image) {
	d := geo.Vector(p, q)
	if math.Hypot(d.X, d.Y) == 0 {
		return
	}
	u := d.Unit().Times(r.lineWidth / 2)
	n := geo.NewPoint(-u.Y, u.X)
	quad := [4]geo.Point{p.Plus(n), q.Plus(n), q.Minus(n), p.Minus(n)}

	box := geom.Rect{Min: quad[0], Max: quad[0]}
	for _, c := range quad[1:] {
		box.ExpandToContainCoord(c)
	}
	rect := image.Rect(
		int(math.Floor(box.Min.X)), int(math.Floor(box.Min.Y)),
		int(math.Ceil(box.Max.X)), int(math.Ceil(box.Max.Y)),
	).Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}

	origin := geo.NewPoint(float64(rect.Min.X), float64(rect.Min.Y))
	r.rz.Reset(rect.Dx(), rect.Dy())
	r.rz.DrawOp = draw.Over
	moveTo(r.rz, quad[0].Minus(origin))
	for _, c := range quad[1:] {
		lineTo(r.rz, c.Minus(origin))
	}
	r.rz.ClosePath()
	r.rz.Draw(r.img, rect, src, image.Point{})
}

func moveTo(rz *vector.Rasterizer, p geo.Point) {
	rz.MoveTo(float32(p.X), float32(p.Y))
}

func lineTo(rz *vector.Rasterizer, p geo.Point) {
	rz.LineTo(float32(p.X), float32(p.Y))
}

func (r *Raster) StrokeText(text string, x, y float64) {
	face, err := r.face()
	if err != nil {
		return
	}
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(r.stroke),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(x * 64)),
			Y: fixed.Int26_6(math.Round(y * 64)),
		},
	}
	d.DrawString(text)
}

func (r *Raster) face() (font.Face, error) {
	size := FontSize(r.fontSpec)
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	ttf, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[size] = f
	return f, nil
}

// EncodePNG writes the current image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
