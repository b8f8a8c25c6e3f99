package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
)

var ErrEmptyImage = errors.New("render: empty image data")

// Ebiten keeps textures as ebiten images and queues draws until Flush.
type Ebiten struct {
	images map[TextureID]*ebiten.Image
	names  map[TextureID]string
	next   TextureID
	queue  []DrawCmd
}

func NewEbiten() *Ebiten {
	return &Ebiten{
		images: map[TextureID]*ebiten.Image{},
		names:  map[TextureID]string{},
	}
}

func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func (e *Ebiten) LoadTexture(name string, data []byte) (TextureID, error) {
	img, err := decodeImage(data)
	if err != nil {
		return NoTexture, fmt.Errorf("render: decode %s: %w", name, err)
	}
	e.next++
	e.images[e.next] = ebiten.NewImageFromImage(img)
	e.names[e.next] = name
	return e.next, nil
}

func (e *Ebiten) UnloadTexture(id TextureID) {
	if img, ok := e.images[id]; ok {
		img.Deallocate()
	}
	delete(e.images, id)
	delete(e.names, id)
}

func (e *Ebiten) Draw(cmd DrawCmd) {
	e.queue = append(e.queue, cmd)
}

// Resident is the number of loaded textures.
func (e *Ebiten) Resident() int {
	return len(e.images)
}

// Flush draws queued commands lowest layer first, in submission order
// within a layer, with the view's top left at (camX, camY).
func (e *Ebiten) Flush(screen *ebiten.Image, camX, camY, zoom float64) {
	if zoom == 0 {
		zoom = 1
	}
	slices.SortStableFunc(e.queue, func(a, b DrawCmd) int { return a.Layer - b.Layer })
	for _, cmd := range e.queue {
		img, ok := e.images[cmd.Texture]
		if !ok {
			continue
		}
		scale := cmd.Scale
		if scale == 0 {
			scale = 1
		}

		op := &ebiten.DrawImageOptions{}
		sx := scale
		if cmd.FlipX {
			sx = -sx
			op.GeoM.Translate(float64(-img.Bounds().Dx()), 0)
		}
		op.GeoM.Scale(sx, scale)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((cmd.X-camX)*zoom, (cmd.Y-camY)*zoom)
		screen.DrawImage(img, op)
	}
	e.queue = e.queue[:0]
}
