// Package engine provides an on-demand frame driver.
//
// An [Engine] dispatches three ordered phases per frame and then calls a
// render callback:
//
//   - [PhaseUpdateStart]
//   - [PhaseUpdate]
//   - [PhaseUpdateComplete]
//
// Frames are requested from a [Scheduler], the platform's per-frame callback.
// The engine only keeps requesting frames while it is running and has at least
// one listener, so an idle scene costs nothing.
//
// # Example
//
//	sched := engine.NewManualScheduler()
//	eng, _ := engine.New(draw, sched)
//	eng.OnUpdate(func(dt float64) { field.Update(pointer.Position()) })
//	eng.Start()
//	sched.Advance(16.7)
//
// # Thread Safety
//
// Engine is NOT thread-safe. All calls, including scheduler callbacks, must
// come from one goroutine. Re-entrant Update calls made from inside a
// listener or the render callback are ignored.
package engine
