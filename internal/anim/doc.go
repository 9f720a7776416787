// Package anim reveals a sequence of 2D points one frame at a time.
//
// The package separates three concerns:
//
//   - [Session]: the per-playback state machine (bounds, revealed points)
//   - primitives: the LINE and SCATTER draw strategies selected by [PlotKind]
//   - [Canvas]: the rendering backend that receives each [Frame]
//
// # Example
//
//	eng := anim.New(anim.Line, canvas)
//	a, err := eng.Play(points, "loss", true)
//	if err != nil {
//		return err
//	}
//	err = a.Run(ctx)
//
// # Thread Safety
//
// An [Engine] drives a single canvas and is NOT safe for concurrent use.
// Calling Play again discards the previous [Animation].
package anim
