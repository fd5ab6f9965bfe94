// Package sim is a kinematic stand-in for a cleaning robot: a unicycle
// model inside a rectangular room whose walls press the bumper.
package sim

import (
	"fmt"
	"math"
)

// Room is an axis-aligned rectangle with its origin in the lower-left corner.
type Room struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Pose is a position in meters and a heading in radians.
type Pose struct {
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Heading float64 `json:"heading" yaml:"heading"`
}

// Robot implements sweepfsm.Agent. It is not safe for concurrent use; the
// realtime runtime serialises access for it.
type Robot struct {
	room   Room
	radius float64
	pose   Pose

	linear  float64
	angular float64
	bumper  bool

	distance float64
	contacts int
	grid     *Coverage
}

// Option configures a Robot.
type Option func(*Robot)

// WithRadius sets the robot's body radius (default 0.17 m).
func WithRadius(r float64) Option {
	return func(rb *Robot) { rb.radius = r }
}

// WithPose sets the starting pose (default: room center, heading 0).
func WithPose(p Pose) Option {
	return func(rb *Robot) { rb.pose = p }
}

// WithCoverage tracks visited floor cells of the given size.
func WithCoverage(cell float64) Option {
	return func(rb *Robot) { rb.grid = NewCoverage(rb.room, cell) }
}

// NewRobot places a robot in room.
func NewRobot(room Room, opts ...Option) (*Robot, error) {
	if room.Width <= 0 || room.Height <= 0 {
		return nil, fmt.Errorf("room must have positive size, got %vx%v", room.Width, room.Height)
	}
	rb := &Robot{
		room:   room,
		radius: 0.17,
		pose:   Pose{X: room.Width / 2, Y: room.Height / 2},
	}
	for _, opt := range opts {
		opt(rb)
	}
	if 2*rb.radius >= math.Min(room.Width, room.Height) {
		return nil, fmt.Errorf("robot radius %v does not fit in %vx%v room", rb.radius, room.Width, room.Height)
	}
	rb.pose.X = clamp(rb.pose.X, rb.radius, room.Width-rb.radius)
	rb.pose.Y = clamp(rb.pose.Y, rb.radius, room.Height-rb.radius)
	if rb.grid != nil {
		rb.grid.Visit(rb.pose.X, rb.pose.Y)
	}
	return rb, nil
}

func (rb *Robot) SetVelocity(linear, angular float64) {
	rb.linear, rb.angular = linear, angular
}

func (rb *Robot) BumperState() bool {
	return rb.bumper
}

// Advance integrates the last command over dt seconds. Motion that would
// cross a wall stops at the wall and presses the bumper for the next read.
func (rb *Robot) Advance(dt float64) {
	heading := normalizeAngle(rb.pose.Heading + rb.angular*dt)
	x := rb.pose.X + rb.linear*math.Cos(heading)*dt
	y := rb.pose.Y + rb.linear*math.Sin(heading)*dt

	cx := clamp(x, rb.radius, rb.room.Width-rb.radius)
	cy := clamp(y, rb.radius, rb.room.Height-rb.radius)
	hit := cx != x || cy != y

	rb.distance += math.Hypot(cx-rb.pose.X, cy-rb.pose.Y)
	rb.pose = Pose{X: cx, Y: cy, Heading: heading}
	if hit && !rb.bumper {
		rb.contacts++
	}
	rb.bumper = hit

	if rb.grid != nil {
		rb.grid.Visit(cx, cy)
	}
}

// Pose returns the current pose.
func (rb *Robot) Pose() Pose { return rb.pose }

// Command returns the last commanded velocities.
func (rb *Robot) Command() (linear, angular float64) { return rb.linear, rb.angular }

// Distance is the total path length travelled.
func (rb *Robot) Distance() float64 { return rb.distance }

// Contacts counts distinct wall contacts.
func (rb *Robot) Contacts() int { return rb.contacts }

// Coverage returns the coverage grid, or nil when not tracked.
func (rb *Robot) Coverage() *Coverage { return rb.grid }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// normalizeAngle wraps a into (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
