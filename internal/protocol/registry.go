// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package protocol

import (
	"context"
	"encoding/binary"
	"fmt"
)

// HandlerFunc processes one decoded-side frame and returns the response
// frame to write back, or nil when the message needs no reply.
type HandlerFunc func(ctx context.Context, frame []byte) ([]byte, error)

// Registry dispatches client frames to their opcode's handler.
type Registry struct {
	handlers map[ClientOpcode]HandlerFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[ClientOpcode]HandlerFunc)}
}

// Register binds a handler to an opcode, replacing any previous binding.
func (r *Registry) Register(opcode ClientOpcode, handler HandlerFunc) {
	r.handlers[opcode] = handler
}

// Dispatch validates the frame header and invokes the opcode's handler.
// An unregistered opcode is an error, never a panic.
func (r *Registry) Dispatch(ctx context.Context, frame []byte) ([]byte, error) {
	if len(frame) < HeaderLength {
		return nil, ErrTooShort
	}
	payloadLen := int(binary.BigEndian.Uint32(frame[1:HeaderLength]))
	if payloadLen != len(frame)-HeaderLength {
		return nil, ErrLengthMismatch
	}

	opcode := ClientOpcode(frame[0])
	handler, ok := r.handlers[opcode]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownOpcode, frame[0])
	}
	return handler(ctx, frame)
}
