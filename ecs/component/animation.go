package component

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/milk9111/alive/anim"
	"github.com/milk9111/alive/ecs"
	"github.com/milk9111/alive/logger"
	"github.com/milk9111/alive/render"
)

// AnimationSource resolves animation resources by name. resource.Locator
// satisfies it.
type AnimationSource interface {
	Locate(name string) (*anim.Animation, bool)
}

// Animation plays one animation out of a named set and draws its current
// frame at the sibling Transform.
type Animation struct {
	ecs.Base
	FlipX bool
	Scale float64
	Layer int

	source    AnimationSource
	preload   []string
	set       map[string]*anim.Animation
	current   *anim.Animation
	transform *Transform
	textures  map[string]render.TextureID
	log       *zap.Logger
}

// NewAnimation creates an animation component. The first preloaded name
// becomes the current animation at Load.
func NewAnimation(source AnimationSource, log *zap.Logger, preload ...string) *Animation {
	return &Animation{
		Scale:    1,
		Layer:    render.LayerObjects,
		source:   source,
		preload:  preload,
		set:      map[string]*anim.Animation{},
		textures: map[string]render.TextureID{},
		log:      logger.OrNop(log),
	}
}

func (*Animation) ID() ecs.Identifier { return ecs.Animation }

func (a *Animation) Load() error {
	t, err := requireSibling[*Transform](a, ecs.Transform)
	if err != nil {
		return err
	}
	a.transform = t
	for _, name := range a.preload {
		a.resolve(name)
	}
	if len(a.preload) > 0 {
		a.Change(a.preload[0])
	}
	return nil
}

func (a *Animation) resolve(name string) (*anim.Animation, bool) {
	if res, ok := a.set[name]; ok {
		return res, true
	}
	if a.source == nil {
		return nil, false
	}
	res, ok := a.source.Locate(name)
	if !ok {
		a.log.Warn("animation not found", zap.String("name", name))
		return nil, false
	}
	res = res.Clone()
	a.set[name] = res
	return res, true
}

// Change switches to the named animation and rewinds it. An unknown name
// keeps the current animation and reports false.
func (a *Animation) Change(name string) bool {
	res, ok := a.resolve(name)
	if !ok {
		return false
	}
	res.Restart()
	a.current = res
	return true
}

// Current is the name of the playing animation, empty when none.
func (a *Animation) Current() string {
	if a.current == nil {
		return ""
	}
	return a.current.Name
}

func (a *Animation) Update() {
	a.current.Update()
}

func (a *Animation) Complete() bool {
	return a.current.Complete()
}

func (a *Animation) FrameNumber() int {
	return a.current.FrameNumber()
}

func (a *Animation) SetFrame(n int) {
	a.current.SetFrame(n)
}

func (a *Animation) NumberOfFrames() int {
	return a.current.NumberOfFrames()
}

func (a *Animation) IsLastFrame() bool {
	return a.current.IsLastFrame()
}

func (a *Animation) Render(r render.Renderer) {
	if a.current == nil || a.current.NumberOfFrames() == 0 || a.transform == nil {
		return
	}
	n := a.current.FrameNumber()
	frame := a.current.Frames[n]

	key := a.current.Name + "#" + strconv.Itoa(n)
	tex, ok := a.textures[key]
	if !ok {
		var err error
		tex, err = r.LoadTexture(key, frame.Image)
		if err != nil {
			a.log.Warn("frame texture load failed", zap.String("frame", key), zap.Error(err))
		}
		// failed loads stay cached as NoTexture
		a.textures[key] = tex
	}
	if tex == render.NoTexture {
		return
	}

	offX := float64(frame.OffsetX)
	if a.FlipX {
		offX = -offX - float64(frame.Width)
	}
	r.Draw(render.DrawCmd{
		Texture: tex,
		X:       a.transform.X + offX*a.Scale,
		Y:       a.transform.Y + float64(frame.OffsetY)*a.Scale,
		Scale:   a.Scale,
		Layer:   a.Layer,
		FlipX:   a.FlipX,
	})
}

// Release unloads every texture this component created.
func (a *Animation) Release(r render.Renderer) {
	for key, tex := range a.textures {
		if tex != render.NoTexture {
			r.UnloadTexture(tex)
		}
		delete(a.textures, key)
	}
}
