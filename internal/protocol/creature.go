// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package protocol

import (
	"bytes"
	"fmt"

	"github.com/demigame/demiserver/internal/world"
)

// CreatureState is the sub-state tag of a creature message.
type CreatureState byte

const (
	CreatureAdd      CreatureState = 0x00
	CreatureMove     CreatureState = 0x01
	CreatureMoveStop CreatureState = 0x02
)

// creaturePayloadVersion tags the creature field layout. Bump it when the
// field order below changes; decoders reject versions they don't know.
const creaturePayloadVersion byte = 1

// Creature is the wire projection of a creature's state. Fields are encoded
// explicitly in fixed order rather than as an opaque object blob, so the
// layout survives across implementations and versions.
type Creature struct {
	ID     string
	Name   string
	Level  int32
	Vector world.Vector
}

// CreatureMessage carries one creature state transition.
type CreatureMessage struct {
	State    CreatureState
	Creature Creature
}

// Encode writes the message as a full frame: opcode, state byte, payload
// version, then the creature fields in fixed order.
func (m *CreatureMessage) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(byte(m.State))
	buf.WriteByte(creaturePayloadVersion)
	if err := writeString(&buf, m.Creature.ID); err != nil {
		return nil, err
	}
	if err := writeString(&buf, m.Creature.Name); err != nil {
		return nil, err
	}
	writeInt32(&buf, m.Creature.Level)
	writeVector(&buf, m.Creature.Vector)
	return frame(byte(SMSGCreature), buf.Bytes()), nil
}

// DecodeCreatureMessage parses an SMSGCreature frame.
func DecodeCreatureMessage(data []byte) (*CreatureMessage, error) {
	payload, err := checkFrame(data, byte(SMSGCreature))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	state, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read creature state: %w", err)
	}
	version, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read creature payload version: %w", err)
	}
	if version != creaturePayloadVersion {
		return nil, fmt.Errorf("unsupported creature payload version %d", version)
	}

	m := &CreatureMessage{State: CreatureState(state)}
	if m.Creature.ID, err = readString(r); err != nil {
		return nil, err
	}
	if m.Creature.Name, err = readString(r); err != nil {
		return nil, err
	}
	if m.Creature.Level, err = readInt32(r); err != nil {
		return nil, err
	}
	if m.Creature.Vector, err = readVector(r); err != nil {
		return nil, err
	}
	return m, nil
}
