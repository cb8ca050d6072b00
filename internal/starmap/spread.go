// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package starmap

import (
	"context"
	"math"
)

// selectSpread solves max-min dispersion exactly for k >= 2.
//
// Combinations are enumerated in lexicographic order with branch-and-bound
// pruning. The greedy farthest-point value seeds the bound: the first set
// reaching it is recorded, after which only strictly better sets replace the
// incumbent, so the result is the lexicographically first optimal set.
//
// ctx is polled every ctxCheckInterval visited branches.
func selectSpread(ctx context.Context, points []Vec2, k int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &spreadSearch{
		ctx:    ctx,
		dist:   distanceMatrix(points),
		n:      len(points),
		k:      k,
		chosen: make([]int, 0, k),
	}
	s.bound = minPairwise(s.dist, greedySpread(s.dist, k))
	s.extend(0, math.Inf(1))
	if s.err != nil {
		return nil, s.err
	}
	return s.best, nil
}

const ctxCheckInterval = 4096

type spreadSearch struct {
	ctx    context.Context
	err    error
	visits int
	dist   [][]float64
	n, k   int
	chosen []int
	best   []int
	bound  float64
	found  bool
}

func (s *spreadSearch) accepts(v float64) bool {
	if !s.found {
		return v >= s.bound
	}
	return v > s.bound
}

// extend adds ids >= start to the partial set whose minimum pairwise
// distance so far is curMin. Adding ids can only lower curMin, so a partial
// set that is not accepted cannot lead to an accepted one.
func (s *spreadSearch) extend(start int, curMin float64) {
	if s.err != nil {
		return
	}
	s.visits++
	if s.visits%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return
		}
	}
	if len(s.chosen) == s.k {
		s.best = append([]int(nil), s.chosen...)
		s.bound = curMin
		s.found = true
		return
	}
	need := s.k - len(s.chosen)
	for i := start; i <= s.n-need; i++ {
		m := curMin
		for _, c := range s.chosen {
			if s.dist[c][i] < m {
				m = s.dist[c][i]
			}
		}
		if !s.accepts(m) {
			continue
		}
		s.chosen = append(s.chosen, i)
		s.extend(i+1, m)
		s.chosen = s.chosen[:len(s.chosen)-1]
		if s.err != nil {
			return
		}
	}
}

// greedySpread picks the farthest pair, then repeatedly the point farthest
// from the current set. Ties go to the lower id.
func greedySpread(dist [][]float64, k int) []int {
	n := len(dist)
	a, b := 0, 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if dist[i][j] > dist[a][b] {
				a, b = i, j
			}
		}
	}

	chosen := []int{a, b}
	inSet := make([]bool, n)
	inSet[a], inSet[b] = true, true

	for len(chosen) < k {
		next, nextDist := -1, -1.0
		for i := 0; i < n; i++ {
			if inSet[i] {
				continue
			}
			d := math.Inf(1)
			for _, c := range chosen {
				d = math.Min(d, dist[c][i])
			}
			if d > nextDist {
				next, nextDist = i, d
			}
		}
		chosen = append(chosen, next)
		inSet[next] = true
	}
	return chosen
}

func minPairwise(dist [][]float64, ids []int) float64 {
	m := math.Inf(1)
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			m = math.Min(m, dist[ids[i]][ids[j]])
		}
	}
	return m
}

func distanceMatrix(points []Vec2) [][]float64 {
	dist := make([][]float64, len(points))
	for i := range points {
		dist[i] = make([]float64, len(points))
		for j := range points {
			dist[i][j] = points[i].DistanceTo(points[j])
		}
	}
	return dist
}
