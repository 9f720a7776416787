// Package viz plays animations in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas (2x4 dots per cell)
//   - [Screen]: anim.Canvas that rasterizes only the changed primitive
//   - [Player]: Bubble Tea model stepping the animation at its interval
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	Q     - Quit
package viz
