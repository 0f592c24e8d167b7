// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// HeaderLength is the frame header size: one opcode byte plus a big-endian
// uint32 payload length.
const HeaderLength = 5

// MaxPayloadLength bounds a single frame's payload. Frames claiming more
// are rejected before any allocation.
const MaxPayloadLength = 1 << 16

// Wire format errors.
var (
	ErrTooShort       = errors.New("frame too short")
	ErrWrongOpcode    = errors.New("wrong opcode for message")
	ErrLengthMismatch = errors.New("payload length mismatch")
	ErrPayloadTooBig  = errors.New("payload length exceeds maximum")
	ErrUnknownOpcode  = errors.New("no handler registered for opcode")
)

// ReadFrame reads one complete frame (header plus payload) from r.
func ReadFrame(r io.Reader) ([]byte, error) {
	header := make([]byte, HeaderLength)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err //nolint:wrapcheck // io.EOF must pass through unwrapped
	}
	payloadLen := binary.BigEndian.Uint32(header[1:HeaderLength])
	if payloadLen > MaxPayloadLength {
		return nil, fmt.Errorf("%w: %d", ErrPayloadTooBig, payloadLen)
	}

	frame := make([]byte, HeaderLength+int(payloadLen))
	copy(frame, header)
	if _, err := io.ReadFull(r, frame[HeaderLength:]); err != nil {
		return nil, fmt.Errorf("short frame payload: %w", err)
	}
	return frame, nil
}

// checkFrame validates a frame against the expected opcode and returns its
// payload.
func checkFrame(data []byte, opcode byte) ([]byte, error) {
	if len(data) < HeaderLength {
		return nil, ErrTooShort
	}
	if data[0] != opcode {
		return nil, fmt.Errorf("%w: want 0x%02X, got 0x%02X", ErrWrongOpcode, opcode, data[0])
	}
	payloadLen := int(binary.BigEndian.Uint32(data[1:HeaderLength]))
	if payloadLen != len(data)-HeaderLength {
		return nil, ErrLengthMismatch
	}
	return data[HeaderLength:], nil
}

// frame prepends the header to a payload.
func frame(opcode byte, payload []byte) []byte {
	out := make([]byte, HeaderLength+len(payload))
	out[0] = opcode
	binary.BigEndian.PutUint32(out[1:HeaderLength], uint32(len(payload)))
	copy(out[HeaderLength:], payload)
	return out
}

// writeString writes a length-prefixed UTF-8 string (uint16 length).
func writeString(buf *bytes.Buffer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string too long for wire: %d bytes", len(s))
	}
	var lenBytes [2]byte
	binary.BigEndian.PutUint16(lenBytes[:], uint16(len(s)))
	buf.Write(lenBytes[:])
	buf.WriteString(s)
	return nil
}

// readString reads a length-prefixed UTF-8 string.
func readString(r *bytes.Reader) (string, error) {
	var lenBytes [2]byte
	if _, err := io.ReadFull(r, lenBytes[:]); err != nil {
		return "", fmt.Errorf("read string length: %w", err)
	}
	strLen := int(binary.BigEndian.Uint16(lenBytes[:]))
	if strLen == 0 {
		return "", nil
	}
	strBytes := make([]byte, strLen)
	if _, err := io.ReadFull(r, strBytes); err != nil {
		return "", fmt.Errorf("read string bytes: %w", err)
	}
	return string(strBytes), nil
}

func writeInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func readInt32(r *bytes.Reader) (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("read int32: %w", err)
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

func writeFloat32(buf *bytes.Buffer, v float32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(v))
	buf.Write(b[:])
}

func readFloat32(r *bytes.Reader) (float32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("read float32: %w", err)
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b[:])), nil
}
