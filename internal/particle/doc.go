// Package particle models a grid of point masses anchored to rest positions.
//
// A [Particle] is pushed away from a target point that comes within its
// threshold radius and is pulled back to its origin otherwise. A [Field]
// owns the grid, drives every particle from one target per frame, and
// reports whether the whole grid has come to rest.
//
// Each particle owns a [Sprite], an opaque drawable handle created by the
// [SpriteFactory] the field was built with. The package only moves sprites;
// drawing them is up to the factory's owner.
package particle
