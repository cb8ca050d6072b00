// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// PlayerID identifies a player for the lifetime of a session. The zero value
// means no player.
type PlayerID = ulid.ULID

// NoPlayer is the owner of an unowned body.
var NoPlayer PlayerID

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

func newULID() ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}

// NewPlayerID returns a fresh, monotonically increasing player id.
func NewPlayerID() PlayerID {
	return newULID()
}

// ParsePlayerID parses the canonical string form of a player id.
func ParsePlayerID(s string) (PlayerID, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return NoPlayer, oops.Code(CodeUnknownPlayer).With("player_id", s).Wrapf(err, "invalid player id")
	}
	return id, nil
}
