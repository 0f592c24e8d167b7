// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package protocol

import (
	"bytes"

	"github.com/demigame/demiserver/internal/world"
)

// writeVector writes a position vector in fixed field order.
func writeVector(buf *bytes.Buffer, vec world.Vector) {
	writeInt32(buf, vec.MapID)
	writeInt32(buf, vec.CellID)
	writeFloat32(buf, vec.X)
	writeFloat32(buf, vec.Y)
	writeInt32(buf, int32(vec.Direction))
}

// readVector reads a position vector in fixed field order.
func readVector(r *bytes.Reader) (world.Vector, error) {
	var (
		vec       world.Vector
		direction int32
		err       error
	)
	if vec.MapID, err = readInt32(r); err != nil {
		return world.Vector{}, err
	}
	if vec.CellID, err = readInt32(r); err != nil {
		return world.Vector{}, err
	}
	if vec.X, err = readFloat32(r); err != nil {
		return world.Vector{}, err
	}
	if vec.Y, err = readFloat32(r); err != nil {
		return world.Vector{}, err
	}
	if direction, err = readInt32(r); err != nil {
		return world.Vector{}, err
	}
	vec.Direction = world.MoveDirection(direction)
	return vec, nil
}

// CharacterListRequest asks for the characters belonging to the session's
// account.
type CharacterListRequest struct {
	SessionID string
}

// Encode writes the request as a full frame.
func (m *CharacterListRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, m.SessionID); err != nil {
		return nil, err
	}
	return frame(byte(CMSGCharacterList), buf.Bytes()), nil
}

// DecodeCharacterListRequest parses a CMSGCharacterList frame.
func DecodeCharacterListRequest(data []byte) (*CharacterListRequest, error) {
	payload, err := checkFrame(data, byte(CMSGCharacterList))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	m := &CharacterListRequest{}
	if m.SessionID, err = readString(r); err != nil {
		return nil, err
	}
	return m, nil
}

// CharacterEntry is one character in a CharacterListResponse.
type CharacterEntry struct {
	ID     string
	Name   string
	Level  int32
	Class  int32
	Race   int32
	Vector world.Vector
}

// CharacterListResponse carries the account's character roster.
type CharacterListResponse struct {
	Characters []CharacterEntry
}

// Encode writes the response as a full frame.
func (m *CharacterListResponse) Encode() ([]byte, error) {
	var buf bytes.Buffer
	writeInt32(&buf, int32(len(m.Characters)))
	for _, c := range m.Characters {
		if err := writeString(&buf, c.ID); err != nil {
			return nil, err
		}
		if err := writeString(&buf, c.Name); err != nil {
			return nil, err
		}
		writeInt32(&buf, c.Level)
		writeInt32(&buf, c.Class)
		writeInt32(&buf, c.Race)
		writeVector(&buf, c.Vector)
	}
	return frame(byte(SMSGCharacterList), buf.Bytes()), nil
}

// DecodeCharacterListResponse parses an SMSGCharacterList frame.
func DecodeCharacterListResponse(data []byte) (*CharacterListResponse, error) {
	payload, err := checkFrame(data, byte(SMSGCharacterList))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	count, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	m := &CharacterListResponse{}
	for i := int32(0); i < count; i++ {
		var c CharacterEntry
		if c.ID, err = readString(r); err != nil {
			return nil, err
		}
		if c.Name, err = readString(r); err != nil {
			return nil, err
		}
		if c.Level, err = readInt32(r); err != nil {
			return nil, err
		}
		if c.Class, err = readInt32(r); err != nil {
			return nil, err
		}
		if c.Race, err = readInt32(r); err != nil {
			return nil, err
		}
		if c.Vector, err = readVector(r); err != nil {
			return nil, err
		}
		m.Characters = append(m.Characters, c)
	}
	return m, nil
}

// CharacterCreateRequest asks to create a character for the session's
// account.
type CharacterCreateRequest struct {
	SessionID string
	Name      string
	Race      int32
}

// Encode writes the request as a full frame.
func (m *CharacterCreateRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, m.SessionID); err != nil {
		return nil, err
	}
	if err := writeString(&buf, m.Name); err != nil {
		return nil, err
	}
	writeInt32(&buf, m.Race)
	return frame(byte(CMSGCharacterCreate), buf.Bytes()), nil
}

// DecodeCharacterCreateRequest parses a CMSGCharacterCreate frame.
func DecodeCharacterCreateRequest(data []byte) (*CharacterCreateRequest, error) {
	payload, err := checkFrame(data, byte(CMSGCharacterCreate))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	m := &CharacterCreateRequest{}
	if m.SessionID, err = readString(r); err != nil {
		return nil, err
	}
	if m.Name, err = readString(r); err != nil {
		return nil, err
	}
	if m.Race, err = readInt32(r); err != nil {
		return nil, err
	}
	return m, nil
}

// CharacterCreateResponse carries the create result code.
type CharacterCreateResponse struct {
	Result byte
}

// Encode writes the response as a full frame.
func (m *CharacterCreateResponse) Encode() ([]byte, error) {
	return frame(byte(SMSGCharacterCreate), []byte{m.Result}), nil
}

// DecodeCharacterCreateResponse parses an SMSGCharacterCreate frame.
func DecodeCharacterCreateResponse(data []byte) (*CharacterCreateResponse, error) {
	payload, err := checkFrame(data, byte(SMSGCharacterCreate))
	if err != nil {
		return nil, err
	}
	if len(payload) != 1 {
		return nil, ErrLengthMismatch
	}
	return &CharacterCreateResponse{Result: payload[0]}, nil
}

// CharacterDeleteRequest asks to delete the named character belonging to
// the session's account.
type CharacterDeleteRequest struct {
	SessionID string
	Name      string
}

// Encode writes the request as a full frame.
func (m *CharacterDeleteRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, m.SessionID); err != nil {
		return nil, err
	}
	if err := writeString(&buf, m.Name); err != nil {
		return nil, err
	}
	return frame(byte(CMSGCharacterDelete), buf.Bytes()), nil
}

// DecodeCharacterDeleteRequest parses a CMSGCharacterDelete frame.
func DecodeCharacterDeleteRequest(data []byte) (*CharacterDeleteRequest, error) {
	payload, err := checkFrame(data, byte(CMSGCharacterDelete))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	m := &CharacterDeleteRequest{}
	if m.SessionID, err = readString(r); err != nil {
		return nil, err
	}
	if m.Name, err = readString(r); err != nil {
		return nil, err
	}
	return m, nil
}

// CharacterDeleteResponse carries the delete result code.
type CharacterDeleteResponse struct {
	Result byte
}

// Encode writes the response as a full frame.
func (m *CharacterDeleteResponse) Encode() ([]byte, error) {
	return frame(byte(SMSGCharacterDelete), []byte{m.Result}), nil
}

// DecodeCharacterDeleteResponse parses an SMSGCharacterDelete frame.
func DecodeCharacterDeleteResponse(data []byte) (*CharacterDeleteResponse, error) {
	payload, err := checkFrame(data, byte(SMSGCharacterDelete))
	if err != nil {
		return nil, err
	}
	if len(payload) != 1 {
		return nil, ErrLengthMismatch
	}
	return &CharacterDeleteResponse{Result: payload[0]}, nil
}

// WorldEnterRequest announces that the session's account is entering the
// world with the given character.
type WorldEnterRequest struct {
	SessionID   string
	CharacterID string
}

// Encode writes the request as a full frame.
func (m *WorldEnterRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, m.SessionID); err != nil {
		return nil, err
	}
	if err := writeString(&buf, m.CharacterID); err != nil {
		return nil, err
	}
	return frame(byte(CMSGWorldEnter), buf.Bytes()), nil
}

// DecodeWorldEnterRequest parses a CMSGWorldEnter frame.
func DecodeWorldEnterRequest(data []byte) (*WorldEnterRequest, error) {
	payload, err := checkFrame(data, byte(CMSGWorldEnter))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	m := &WorldEnterRequest{}
	if m.SessionID, err = readString(r); err != nil {
		return nil, err
	}
	if m.CharacterID, err = readString(r); err != nil {
		return nil, err
	}
	return m, nil
}

// WorldLeaveRequest announces that the session's account is leaving the
// world; the server clears its presence and session.
type WorldLeaveRequest struct {
	SessionID string
}

// Encode writes the request as a full frame.
func (m *WorldLeaveRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, m.SessionID); err != nil {
		return nil, err
	}
	return frame(byte(CMSGWorldLeave), buf.Bytes()), nil
}

// DecodeWorldLeaveRequest parses a CMSGWorldLeave frame.
func DecodeWorldLeaveRequest(data []byte) (*WorldLeaveRequest, error) {
	payload, err := checkFrame(data, byte(CMSGWorldLeave))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	m := &WorldLeaveRequest{}
	if m.SessionID, err = readString(r); err != nil {
		return nil, err
	}
	return m, nil
}

// MoveUpdateRequest carries a character's periodic position save.
type MoveUpdateRequest struct {
	CharacterID string
	Vector      world.Vector
}

// Encode writes the request as a full frame.
func (m *MoveUpdateRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, m.CharacterID); err != nil {
		return nil, err
	}
	writeVector(&buf, m.Vector)
	return frame(byte(CMSGMoveUpdate), buf.Bytes()), nil
}

// DecodeMoveUpdateRequest parses a CMSGMoveUpdate frame.
func DecodeMoveUpdateRequest(data []byte) (*MoveUpdateRequest, error) {
	payload, err := checkFrame(data, byte(CMSGMoveUpdate))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	m := &MoveUpdateRequest{}
	if m.CharacterID, err = readString(r); err != nil {
		return nil, err
	}
	if m.Vector, err = readVector(r); err != nil {
		return nil, err
	}
	return m, nil
}
