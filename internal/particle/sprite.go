package particle

import "github.com/san-kum/restfield/internal/vec"

// Sprite is the drawable handle a particle keeps in sync with its position.
type Sprite interface {
	SetPosition(p vec.Vector2)
	Destroy()
}

// SpriteFactory creates one sprite per particle.
type SpriteFactory interface {
	NewSprite(origin vec.Vector2) Sprite
}

// SpriteFactoryFunc adapts a function to SpriteFactory.
type SpriteFactoryFunc func(origin vec.Vector2) Sprite

func (f SpriteFactoryFunc) NewSprite(origin vec.Vector2) Sprite { return f(origin) }

type nopSprite struct{}

func (nopSprite) SetPosition(vec.Vector2) {}
func (nopSprite) Destroy()                {}

// NopSprites creates sprites that draw nothing, for headless runs.
var NopSprites SpriteFactory = SpriteFactoryFunc(func(vec.Vector2) Sprite { return nopSprite{} })
