// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

// Package world provides character and position persistence for the
// character store.
package world

import (
	"github.com/google/uuid"
)

// MaxCharactersPerAccount is the hard limit of characters one account may
// hold. Enforced here at the service layer; the repositories themselves do
// not enforce it.
const MaxCharactersPerAccount = 7

// Race is a playable race.
type Race int32

const (
	RaceHuman Race = iota
	RaceOrc
)

// Class is a character class. New characters always start as Warrior.
type Class int32

const (
	ClassWarrior Class = iota
	ClassMage
)

// MoveDirection is a facing direction.
type MoveDirection int32

const (
	DirectionDown MoveDirection = iota
	DirectionLeft
	DirectionRight
	DirectionUp
)

// UnsetCellID is the sentinel cell id written for a freshly created
// character, before the world server assigns a real cell.
const UnsetCellID int32 = -1

// Vector is a character's position state.
type Vector struct {
	MapID     int32
	CellID    int32
	X         float32
	Y         float32
	Direction MoveDirection
}

// Character is one character row with its attached position.
type Character struct {
	ID        uuid.UUID
	AccountID int32
	Name      string
	Level     int32
	Class     Class
	Race      Race
	Vector    Vector
}
