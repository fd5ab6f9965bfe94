package sweepfsm

import (
	"fmt"
	"strings"
)

// Behavior identifies one of the four sweep behaviors.
type Behavior uint8

const (
	ForwardSweep Behavior = iota + 1
	SpiralSweep
	Retreat
	Rotate
)

// Behaviors lists every behavior in declaration order.
var Behaviors = []Behavior{ForwardSweep, SpiralSweep, Retreat, Rotate}

var behaviorNames = map[Behavior]string{
	ForwardSweep: "ForwardSweep",
	SpiralSweep:  "SpiralSweep",
	Retreat:      "Retreat",
	Rotate:       "Rotate",
}

func (b Behavior) String() string {
	if name, ok := behaviorNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Behavior(%d)", uint8(b))
}

// Valid reports whether b is one of the four known behaviors.
func (b Behavior) Valid() bool {
	_, ok := behaviorNames[b]
	return ok
}

// ParseBehavior accepts a behavior name, case-insensitively.
func ParseBehavior(s string) (Behavior, error) {
	for b, name := range behaviorNames {
		if strings.EqualFold(name, s) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown behavior %q", s)
}

func (b Behavior) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("unknown behavior %d", uint8(b))
	}
	return []byte(b.String()), nil
}

func (b *Behavior) UnmarshalText(text []byte) error {
	parsed, err := ParseBehavior(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
