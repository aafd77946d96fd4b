// Package viz runs the particle field as a terminal application.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the tea.Model that feeds mouse input into a scene and draws it
//   - [Canvas]: Braille-based pixel canvas, one dot per sub-pixel
//   - Theme selection with 5 built-in color schemes
//
// Terminal cells are split into 2x4 sub-pixels, so a W x H terminal area
// becomes a 2W x 4H field layout. Particles are colored by how far they sit
// from their origin, as a fraction of the push threshold.
//
// # Key Bindings
//
//	Mouse - Drag to push particles
//	O     - Toggle the debug overlay
//	T     - Cycle color themes
//	P     - Cycle particle palettes
//	R     - Rebuild the field
//	Q     - Quit
//
// # Frame Timing
//
// Frames are driven by tea.Tick only while the scene has work queued. Once
// the field settles and the engine stops, ticking stops too and the program
// idles until the next mouse event or resize.
package viz
