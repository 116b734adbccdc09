// Package renderer draws the simulation with raylib.
package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacedrift/scene"
	"github.com/pthm-cable/spacedrift/shape"
)

const rad2deg = 180 / math.Pi

// ShapeRenderer draws scene items. Sprites with no loaded texture are
// drawn as an outlined box.
type ShapeRenderer struct {
	Fill    rl.Color
	Outline rl.Color
	Player  rl.Color

	textures map[string]rl.Texture2D
}

// NewShapeRenderer creates a renderer with the default palette.
func NewShapeRenderer() *ShapeRenderer {
	return &ShapeRenderer{
		Fill:     rl.Color{R: 90, G: 160, B: 220, A: 255},
		Outline:  rl.Color{R: 200, G: 220, B: 240, A: 255},
		Player:   rl.Color{R: 240, G: 200, B: 90, A: 255},
		textures: make(map[string]rl.Texture2D),
	}
}

// LoadSprite loads the image at path for sprites named name, replacing any
// texture already loaded for it. Must be called after the window is
// created.
func (r *ShapeRenderer) LoadSprite(name, path string) error {
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return fmt.Errorf("loading sprite %q from %s", name, path)
	}
	r.setTexture(name, tex)
	return nil
}

// GenerateParticleSprite builds the built-in particle texture: a ringed
// disc in the fill and outline colors.
func (r *ShapeRenderer) GenerateParticleSprite(size int) {
	img := rl.GenImageColor(size, size, rl.Blank)
	c := int32(size / 2)
	rl.ImageDrawCircle(img, c, c, c-1, r.Outline)
	rl.ImageDrawCircle(img, c, c, c*3/4, r.Fill)
	r.setTexture(shape.ParticleSprite, rl.LoadTextureFromImage(img))
	rl.UnloadImage(img)
}

func (r *ShapeRenderer) setTexture(name string, tex rl.Texture2D) {
	if old, ok := r.textures[name]; ok {
		rl.UnloadTexture(old)
	}
	r.textures[name] = tex
}

// Draw renders items. Items belonging to player use the player color.
func (r *ShapeRenderer) Draw(items []scene.Item, player func(scene.Item) bool) {
	for i := range items {
		it := &items[i]
		color := r.Fill
		if player != nil && player(*it) {
			color = r.Player
		}

		center := vec(it.Transform.Origin())
		scale := it.Transform.Scale()
		angle := float32(it.Transform.Angle() * rad2deg)

		switch s := it.Shape.(type) {
		case shape.Circle:
			rl.DrawCircleV(center, float32(s.Radius*scale), color)
		case shape.Rectangle:
			w, h := float32(s.Width*scale), float32(s.Height*scale)
			rl.DrawRectanglePro(
				rl.Rectangle{X: center.X, Y: center.Y, Width: w, Height: h},
				rl.Vector2{X: w / 2, Y: h / 2},
				angle,
				color,
			)
		case shape.Sprite:
			w, h := float32(s.Width*scale), float32(s.Height*scale)
			tex, ok := r.textures[s.Name]
			if !ok {
				r.outline(it, s.Width, s.Height)
				continue
			}
			rl.DrawTexturePro(
				tex,
				rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)},
				rl.Rectangle{X: center.X, Y: center.Y, Width: w, Height: h},
				rl.Vector2{X: w / 2, Y: h / 2},
				angle,
				rl.White,
			)
		}
	}
}

// outline draws the box of a w×h shape through the item transform.
func (r *ShapeRenderer) outline(it *scene.Item, w, h float64) {
	hw, hh := w/2, h/2
	corners := [4]r2.Vec{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	for i := range corners {
		a := vec(it.Transform.Apply(corners[i]))
		b := vec(it.Transform.Apply(corners[(i+1)%4]))
		rl.DrawLineV(a, b, r.Outline)
	}
}

// Unload frees loaded textures.
func (r *ShapeRenderer) Unload() {
	for name, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, name)
	}
}

func vec(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
