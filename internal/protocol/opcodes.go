// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

// Package protocol defines the opcode-tagged binary wire format spoken
// between game clients and the server. Every message begins with a one-byte
// opcode followed by a big-endian payload length; the opcode space is
// partitioned by direction. Numeric opcode values are protocol-fixed and
// must not be reassigned without a protocol version bump.
package protocol

// ClientOpcode tags a client-to-server message.
type ClientOpcode byte

const (
	CMSGLogon           ClientOpcode = 0x01
	CMSGCharacterList   ClientOpcode = 0x02
	CMSGCharacterCreate ClientOpcode = 0x03
	CMSGCharacterDelete ClientOpcode = 0x04
	CMSGWorldEnter      ClientOpcode = 0x05
	CMSGWorldLeave      ClientOpcode = 0x06
	CMSGMoveUpdate      ClientOpcode = 0x07
	CMSGRealmList       ClientOpcode = 0x10
)

// ServerOpcode tags a server-to-client message.
type ServerOpcode byte

const (
	SMSGLogon           ServerOpcode = 0x01
	SMSGCharacterList   ServerOpcode = 0x02
	SMSGCharacterCreate ServerOpcode = 0x03
	SMSGCharacterDelete ServerOpcode = 0x04
	SMSGCreature        ServerOpcode = 0x05
	SMSGRealmList       ServerOpcode = 0x10
)

// Logon result codes carried in SMSGLogon.
const (
	LogonSuccess         byte = 0x00
	LogonUnknown         byte = 0x10
	LogonFailed          byte = 0x11
	LogonServerError     byte = 0x12
	LogonAlreadyLoggedIn byte = 0x13
)

// Character operation result codes carried in SMSGCharacterCreate and
// SMSGCharacterDelete.
const (
	CharacterSuccess     byte = 0x00
	CharacterExists      byte = 0x01
	CharacterServerError byte = 0x02
)
