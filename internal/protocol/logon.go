// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package protocol

import (
	"bytes"
)

// LogonRequest asks the server to authenticate the given credentials.
// The password travels in clear inside the frame; transport-level security
// is the outer layer's concern, and the server never stores it.
type LogonRequest struct {
	Username string
	Password string
}

// Encode writes the request as a full frame.
func (m *LogonRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, m.Username); err != nil {
		return nil, err
	}
	if err := writeString(&buf, m.Password); err != nil {
		return nil, err
	}
	return frame(byte(CMSGLogon), buf.Bytes()), nil
}

// DecodeLogonRequest parses a CMSGLogon frame.
func DecodeLogonRequest(data []byte) (*LogonRequest, error) {
	payload, err := checkFrame(data, byte(CMSGLogon))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	m := &LogonRequest{}
	if m.Username, err = readString(r); err != nil {
		return nil, err
	}
	if m.Password, err = readString(r); err != nil {
		return nil, err
	}
	return m, nil
}

// LogonResponse carries the logon result. AccountID and SessionID are set
// only when Result is LogonSuccess.
type LogonResponse struct {
	Result    byte
	AccountID int32
	SessionID string
}

// Encode writes the response as a full frame.
func (m *LogonResponse) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(m.Result)
	writeInt32(&buf, m.AccountID)
	if err := writeString(&buf, m.SessionID); err != nil {
		return nil, err
	}
	return frame(byte(SMSGLogon), buf.Bytes()), nil
}

// DecodeLogonResponse parses an SMSGLogon frame.
func DecodeLogonResponse(data []byte) (*LogonResponse, error) {
	payload, err := checkFrame(data, byte(SMSGLogon))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	m := &LogonResponse{}
	if m.Result, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if m.AccountID, err = readInt32(r); err != nil {
		return nil, err
	}
	if m.SessionID, err = readString(r); err != nil {
		return nil, err
	}
	return m, nil
}
