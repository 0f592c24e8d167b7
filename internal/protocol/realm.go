// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package protocol

import (
	"bytes"

	"github.com/demigame/demiserver/internal/auth"
)

// RealmListRequest asks for the realm list. It carries no payload.
type RealmListRequest struct{}

// Encode writes the request as a full frame.
func (m *RealmListRequest) Encode() ([]byte, error) {
	return frame(byte(CMSGRealmList), nil), nil
}

// DecodeRealmListRequest parses a CMSGRealmList frame.
func DecodeRealmListRequest(data []byte) (*RealmListRequest, error) {
	if _, err := checkFrame(data, byte(CMSGRealmList)); err != nil {
		return nil, err
	}
	return &RealmListRequest{}, nil
}

// RealmListResponse carries the realm list.
type RealmListResponse struct {
	Realms []auth.Realm
}

// Encode writes the response as a full frame.
func (m *RealmListResponse) Encode() ([]byte, error) {
	var buf bytes.Buffer
	writeInt32(&buf, int32(len(m.Realms)))
	for _, realm := range m.Realms {
		writeInt32(&buf, realm.ID)
		if err := writeString(&buf, realm.Name); err != nil {
			return nil, err
		}
		writeInt32(&buf, realm.Port)
	}
	return frame(byte(SMSGRealmList), buf.Bytes()), nil
}

// DecodeRealmListResponse parses an SMSGRealmList frame.
func DecodeRealmListResponse(data []byte) (*RealmListResponse, error) {
	payload, err := checkFrame(data, byte(SMSGRealmList))
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)

	count, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	m := &RealmListResponse{}
	for i := int32(0); i < count; i++ {
		var realm auth.Realm
		if realm.ID, err = readInt32(r); err != nil {
			return nil, err
		}
		if realm.Name, err = readString(r); err != nil {
			return nil, err
		}
		if realm.Port, err = readInt32(r); err != nil {
			return nil, err
		}
		m.Realms = append(m.Realms, realm)
	}
	return m, nil
}
