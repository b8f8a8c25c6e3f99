// Package render defines the renderer collaborator. The core asks for
// textures by resource name and submits draw commands; it never touches
// pixel data.
package render

// TextureID is a renderer owned texture slot. Zero is no texture.
type TextureID int

const NoTexture TextureID = 0

const (
	LayerBackground = 0
	LayerObjects    = 10
	LayerForeground = 20
	LayerDebug      = 30
)

// DrawCmd places a texture in world coordinates.
type DrawCmd struct {
	Texture TextureID
	X       float64
	Y       float64
	Scale   float64
	Layer   int
	FlipX   bool
}

type Renderer interface {
	// LoadTexture decodes encoded image data into a texture slot.
	LoadTexture(name string, data []byte) (TextureID, error)
	UnloadTexture(id TextureID)
	Draw(cmd DrawCmd)
}
