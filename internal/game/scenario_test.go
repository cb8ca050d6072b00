// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/starmap/internal/game"
	"github.com/holomush/starmap/internal/planet"
	"github.com/holomush/starmap/internal/starmap"
)

var _ = Describe("A two player game on a generated map", func() {
	var (
		ctx     context.Context
		state   *game.GameState
		players []*game.Player
	)

	BeforeEach(func() {
		ctx = context.Background()

		m, err := planet.BuildMap(ctx, planet.MapOptions{
			Options:     planet.Options{Width: 800, Height: 800, Seed: 2026},
			Count:       10,
			MinDistance: 100,
			MaxDistance: 1000,
		})
		Expect(err).NotTo(HaveOccurred())

		state, err = game.New(m, game.DefaultRules())
		Expect(err).NotTo(HaveOccurred())

		players, err = state.SeedPlayers(ctx, []game.PlayerSpec{
			{Name: "alice", Kind: game.KindHuman},
			{Name: "bob", Kind: game.KindHuman},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if !state.Starmap().Destroyed() {
			Expect(state.Close()).To(Succeed())
		}
	})

	It("keeps every pair of bodies at least 100 apart", func() {
		bodies, err := state.Starmap().Bodies()
		Expect(err).NotTo(HaveOccurred())
		Expect(bodies).To(HaveLen(10))

		ids := make([]int, len(bodies))
		for i, b := range bodies {
			Expect(b.ID()).To(Equal(i))
			ids[i] = i
		}
		minDist, err := state.Starmap().MinPairwiseDistance(ids)
		Expect(err).NotTo(HaveOccurred())
		Expect(minDist).To(BeNumerically(">=", 100))
	})

	It("seeds each player on an owned home with 100 resources and one unit", func() {
		Expect(players).To(HaveLen(2))
		Expect(players[0].Home).NotTo(Equal(players[1].Home))

		for _, p := range players {
			home, err := state.Starmap().Body(p.Home)
			Expect(err).NotTo(HaveOccurred())
			props := home.Properties()
			Expect(props.OwnedBy(p.ID)).To(BeTrue())
			Expect(props.Units).To(Equal(1))
			Expect(props.Stock).To(Equal(100.0))
		}
	})

	It("places the homes as far apart as the map allows", func() {
		homeDist, err := state.Starmap().DistanceBetween(players[0].Home, players[1].Home)
		Expect(err).NotTo(HaveOccurred())

		bodies, err := state.Starmap().Bodies()
		Expect(err).NotTo(HaveOccurred())
		for i := range bodies {
			for j := i + 1; j < len(bodies); j++ {
				Expect(starmap.Distance(bodies[i], bodies[j])).To(BeNumerically("<=", homeDist))
			}
		}
	})

	It("lets a player grow, build and expand over several ticks", func() {
		alice := players[0]
		for range 3 {
			state.Enqueue(alice.ID, game.AddShip{Target: alice.Home})
		}
		_, err := state.Tick(ctx, 0)
		Expect(err).NotTo(HaveOccurred())

		home, err := state.Starmap().Body(alice.Home)
		Expect(err).NotTo(HaveOccurred())
		Expect(home.Properties().Units).To(Equal(4))

		target := -1
		for _, props := range state.Snapshot() {
			if !props.Owned() {
				target = props.ID
				break
			}
		}
		Expect(target).To(BeNumerically(">=", 0))

		state.Enqueue(alice.ID, game.MoveShips{From: alice.Home, To: target})
		report, err := state.Tick(ctx, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Results).To(HaveLen(1))
		Expect(report.Results[0].Err).NotTo(HaveOccurred())

		Expect(home.Properties().Units).To(Equal(2))
		claimed, err := state.Starmap().Body(target)
		Expect(err).NotTo(HaveOccurred())
		Expect(claimed.Properties().OwnedBy(alice.ID)).To(BeTrue())
		Expect(claimed.Properties().Units).To(Equal(2))
	})

	It("rejects queries once the map is destroyed", func() {
		Expect(state.Close()).To(Succeed())

		_, err := state.Starmap().Body(0)
		Expect(err).To(HaveOccurred())
		Expect(state.Close()).NotTo(Succeed())
	})
})
