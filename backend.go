package trellis

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Backend is the renderer collaborator. The engine allocates level bitmaps
// through it, reports bitmaps whose pixels changed, and asks it to schedule a
// render whenever something was invalidated.
type Backend interface {
	NewBitmap(width, height int) Bitmap
	UploadBitmap(b Bitmap)
	ScheduleRender()
}

// Bitmap is an exclusively owned raster surface backing a top-level or
// scrolling control.
type Bitmap interface {
	Size() Size
	// Surface returns a drawing surface clipped to the whole bitmap.
	Surface() Surface
	Dispose()
}

// Surface draws into a bitmap. Coordinates are bitmap coordinates; every
// operation is clipped to Bounds.
type Surface interface {
	Bounds() Rect
	// Clip returns a surface whose clip is the intersection of the current
	// clip and r. Clips only ever narrow.
	Clip(r Rect) Surface
	// Clear resets the pixels in r to transparent.
	Clear(r Rect)
	// Fill blends c over the pixels in r.
	Fill(r Rect, c Color)
	// StrokeRect draws a border of the given width inside r.
	StrokeRect(r Rect, width int, c Color)
	// DrawBitmap draws the src area of b stretched over dst.
	DrawBitmap(b Bitmap, src, dst Rect, opacity float64)
	// DrawText draws a single line of debug-font text with its top-left at (x, y).
	DrawText(text string, x, y int)
}

// --- Ebitengine backend ---

// EbitenBackend allocates level bitmaps as *ebiten.Image. Released images are
// kept per exact size and handed out again, so resize churn (animations,
// window drags) does not allocate a fresh texture every frame.
type EbitenBackend struct {
	pool       bitmapPool
	renderFlag bool
}

// NewEbitenBackend creates the default backend.
func NewEbitenBackend() *EbitenBackend {
	return &EbitenBackend{}
}

// NewBitmap returns a cleared bitmap of the given size.
func (b *EbitenBackend) NewBitmap(width, height int) Bitmap {
	return &ebitenBitmap{img: b.pool.Acquire(width, height), pool: &b.pool}
}

// UploadBitmap is a no-op: ebiten images already live on the GPU.
func (b *EbitenBackend) UploadBitmap(Bitmap) {}

// ScheduleRender raises the level-triggered render flag.
func (b *EbitenBackend) ScheduleRender() { b.renderFlag = true }

// TakeRenderFlag returns and clears the render flag.
func (b *EbitenBackend) TakeRenderFlag() bool {
	f := b.renderFlag
	b.renderFlag = false
	return f
}

// bitmapPool manages reusable ebiten.Images keyed by exact dimensions.
type bitmapPool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared image of exactly (w, h) pixels.
func (p *bitmapPool) Acquire(w, h int) *ebiten.Image {
	key := poolKey(w, h)
	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}
	return ebiten.NewImage(w, h)
}

// Release returns an image to the pool. It is cleared on the next Acquire.
func (p *bitmapPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	key := poolKey(b.Dx(), b.Dy())
	p.buckets[key] = append(p.buckets[key], img)
}

type ebitenBitmap struct {
	img  *ebiten.Image
	pool *bitmapPool
}

func (b *ebitenBitmap) Size() Size {
	if b.img == nil {
		return Size{}
	}
	r := b.img.Bounds()
	return Size{r.Dx(), r.Dy()}
}

func (b *ebitenBitmap) Surface() Surface {
	s := b.Size()
	return &ebitenSurface{img: b.img, clip: Rect{0, 0, s.Width, s.Height}}
}

// Image returns the backing image, or nil after Dispose.
func (b *ebitenBitmap) Image() *ebiten.Image { return b.img }

func (b *ebitenBitmap) Dispose() {
	if b.img == nil {
		return
	}
	if b.pool != nil {
		b.pool.Release(b.img)
	} else {
		b.img.Deallocate()
	}
	b.img = nil
}

// EbitenImage returns the *ebiten.Image behind a bitmap allocated by
// EbitenBackend, or nil for other backends.
func EbitenImage(b Bitmap) *ebiten.Image {
	if eb, ok := b.(*ebitenBitmap); ok {
		return eb.img
	}
	return nil
}

type ebitenSurface struct {
	img  *ebiten.Image
	clip Rect
}

func (s *ebitenSurface) Bounds() Rect { return s.clip }

func (s *ebitenSurface) Clip(r Rect) Surface {
	return &ebitenSurface{img: s.img, clip: s.clip.Intersect(r)}
}

// sub returns the part of the image inside r ∩ clip, or nil when empty.
func (s *ebitenSurface) sub(r Rect) *ebiten.Image {
	r = r.Intersect(s.clip)
	if r.IsEmpty() || s.img == nil {
		return nil
	}
	return s.img.SubImage(rectToImage(r)).(*ebiten.Image)
}

func (s *ebitenSurface) Clear(r Rect) {
	if dst := s.sub(r); dst != nil {
		dst.Clear()
	}
}

func (s *ebitenSurface) Fill(r Rect, c Color) {
	if c.IsTransparent() {
		return
	}
	if dst := s.sub(r); dst != nil {
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.toRGBA(), false)
	}
}

func (s *ebitenSurface) StrokeRect(r Rect, width int, c Color) {
	if width <= 0 || c.IsTransparent() {
		return
	}
	dst := s.sub(r)
	if dst == nil {
		return
	}
	half := float32(width) / 2
	vector.StrokeRect(dst,
		float32(r.X)+half, float32(r.Y)+half,
		float32(r.Width)-float32(width), float32(r.Height)-float32(width),
		float32(width), c.toRGBA(), false)
}

func (s *ebitenSurface) DrawBitmap(b Bitmap, src, dst Rect, opacity float64) {
	srcImg := EbitenImage(b)
	if srcImg == nil || src.IsEmpty() || dst.IsEmpty() {
		return
	}
	target := s.sub(s.clip)
	if target == nil {
		return
	}
	part := srcImg.SubImage(rectToImage(src)).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(-src.X), float64(-src.Y))
	if dst.Width != src.Width || dst.Height != src.Height {
		op.GeoM.Scale(float64(dst.Width)/float64(src.Width), float64(dst.Height)/float64(src.Height))
		op.Filter = ebiten.FilterLinear
	}
	op.GeoM.Translate(float64(dst.X), float64(dst.Y))
	if opacity < 1 {
		op.ColorScale.ScaleAlpha(float32(opacity))
	}
	target.DrawImage(part, &op)
}

func (s *ebitenSurface) DrawText(text string, x, y int) {
	if dst := s.sub(s.clip); dst != nil {
		ebitenutil.DebugPrintAt(dst, text, x, y)
	}
}

// toRGBA converts a trellis Color to a premultiplied color.Color.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func rectToImage(r Rect) image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}
