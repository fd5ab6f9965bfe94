package sweepfsm

import "fmt"

// Edge is one possible transition. Priority orders the edges leaving the
// same behavior: lower values are checked first.
type Edge struct {
	From     Behavior `json:"from" yaml:"from"`
	To       Behavior `json:"to" yaml:"to"`
	Guard    string   `json:"guard" yaml:"guard"`
	Priority int      `json:"priority" yaml:"priority"`
}

// Edges describes the transitions the four behaviors check, with the
// thresholds from cfg filled into the guard labels.
func Edges(cfg Config) []Edge {
	return []Edge{
		{From: ForwardSweep, To: Retreat, Guard: "bumper", Priority: 0},
		{From: ForwardSweep, To: SpiralSweep, Guard: fmt.Sprintf("elapsed > %gs", cfg.ForwardDuration), Priority: 1},
		{From: SpiralSweep, To: Retreat, Guard: "bumper", Priority: 0},
		{From: SpiralSweep, To: ForwardSweep, Guard: fmt.Sprintf("elapsed > %gs", cfg.SpiralDuration), Priority: 1},
		{From: Retreat, To: Rotate, Guard: fmt.Sprintf("elapsed > %gs", cfg.RetreatDuration), Priority: 0},
		{From: Rotate, To: ForwardSweep, Guard: "elapsed > |target|", Priority: 0},
	}
}
