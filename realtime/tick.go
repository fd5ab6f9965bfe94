package realtime

import (
	"go.uber.org/zap"
)

// processTick runs one tick. Callers hold rt.mu.
func (rt *Runtime) processTick(tick uint64) {
	defer func() {
		if r := recover(); r != nil {
			rt.log.Error("tick panicked",
				zap.Uint64("tick", tick),
				zap.Any("panic", r),
			)
		}
	}()

	// Phase 1: check transitions and execute the active behavior
	rt.machine.Update(rt.agent)

	// Phase 2: let the caller advance the world (simulation, sensors)
	if rt.onTick != nil {
		rt.onTick(tick)
	}
}
