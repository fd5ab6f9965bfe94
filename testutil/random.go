package testutil

// SequenceRandomizer replays fixed directions and angles, cycling when a
// list runs out. Empty lists yield +1 and 0.
type SequenceRandomizer struct {
	Directions []float64
	Angles     []float64

	nextDir   int
	nextAngle int
}

// Fixed returns a randomizer that always draws direction and angle.
func Fixed(direction, angle float64) *SequenceRandomizer {
	return &SequenceRandomizer{
		Directions: []float64{direction},
		Angles:     []float64{angle},
	}
}

func (r *SequenceRandomizer) TurnDirection() float64 {
	if len(r.Directions) == 0 {
		return 1
	}
	d := r.Directions[r.nextDir%len(r.Directions)]
	r.nextDir++
	return d
}

func (r *SequenceRandomizer) TargetAngle() float64 {
	if len(r.Angles) == 0 {
		return 0
	}
	a := r.Angles[r.nextAngle%len(r.Angles)]
	r.nextAngle++
	return a
}

// Draws returns how many Rotate constructions have drawn from r.
func (r *SequenceRandomizer) Draws() int {
	return r.nextAngle
}
