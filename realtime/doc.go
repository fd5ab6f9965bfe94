// Package realtime drives a sweepfsm.Machine from a fixed-rate tick loop.
//
// The machine itself is a plain synchronous object: one call to Update is
// one sample. This package supplies the outer sampling loop around it:
//   - A ticker fires every TickRate (by default the machine's SampleTime)
//   - Each tick calls Machine.Update on the configured agent, then OnTick
//   - Ticks and readers are serialised by a mutex, so Current and
//     GetTickNumber are safe from any goroutine
//   - A panic inside a tick is recovered and logged; the loop keeps running
//     and the tick is not counted
//   - With MaxTicks set, the loop exits on its own after that many ticks
//
// # Example Usage
//
//	machine, _ := sweepfsm.NewMachine(sweepfsm.DefaultConfig())
//	rt := realtime.NewRuntime(machine, robot, realtime.Config{
//		OnTick: func(tick uint64) { robot.Advance(0.01) },
//	})
//	rt.Start(ctx)
//	defer rt.Stop()
//
// # Stepping
//
// Step runs exactly one tick synchronously. It is how simulations run
// faster than wall-clock time and how tests get reproducible tick counts;
// it may be mixed with the ticker but is normally used instead of Start.
//
// # Timing
//
// Elapsed time inside the machine is counted in ticks, not measured. A
// late or dropped ticker fire therefore stretches wall-clock time but never
// changes which behavior runs on which tick.
package realtime
