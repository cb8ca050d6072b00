// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package starmap builds and queries a fixed collection of positioned bodies
// whose pairwise placement satisfies a caller-supplied constraint.
package starmap

import "math"

// Vec2 is a position on the map plane.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vec2) DistanceTo(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Node is the capability the map needs from a body owned by an external
// backend. ID is assigned once by the builder and never changes.
type Node interface {
	ID() int
	Position() Vec2
}

// Destroyer is implemented by nodes that can release their backend resources.
type Destroyer interface {
	Destroy()
}

// Distance returns the Euclidean distance between two nodes.
func Distance(a, b Node) float64 {
	return a.Position().DistanceTo(b.Position())
}

// Generator produces the candidate node for a sequential id.
// A generator that returns an error must not hand back a node that needs cleanup.
type Generator[N Node] interface {
	Generate(id int) (N, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc[N Node] func(id int) (N, error)

// Generate calls f(id).
func (f GeneratorFunc[N]) Generate(id int) (N, error) {
	return f(id)
}

// Validator reports whether two nodes may coexist on the same map.
// Implementations must be symmetric.
type Validator[N Node] interface {
	Valid(a, b N) bool
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[N Node] func(a, b N) bool

// Valid calls f(a, b).
func (f ValidatorFunc[N]) Valid(a, b N) bool {
	return f(a, b)
}

// Cleaner releases a node that the map no longer owns.
type Cleaner[N Node] interface {
	Clean(node N)
}

// CleanerFunc adapts a function to Cleaner.
type CleanerFunc[N Node] func(node N)

// Clean calls f(node).
func (f CleanerFunc[N]) Clean(node N) {
	f(node)
}

// DistanceBounds accepts a pair when min <= distance <= max.
func DistanceBounds[N Node](minDist, maxDist float64) Validator[N] {
	return ValidatorFunc[N](func(a, b N) bool {
		d := Distance(a, b)
		return d >= minDist && d <= maxDist
	})
}

// DestroyCleaner returns a cleaner that calls Destroy on nodes implementing
// Destroyer and ignores the rest.
func DestroyCleaner[N Node]() Cleaner[N] {
	return CleanerFunc[N](func(node N) {
		if d, ok := any(node).(Destroyer); ok {
			d.Destroy()
		}
	})
}
