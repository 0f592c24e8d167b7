// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package postgres

import (
	"context"

	"github.com/samber/oops"

	"github.com/demigame/demiserver/internal/auth"
)

// RealmRepository implements auth.RealmRepository using PostgreSQL.
type RealmRepository struct {
	pool Pool
}

// NewRealmRepository creates a new RealmRepository.
func NewRealmRepository(pool Pool) *RealmRepository {
	return &RealmRepository{pool: pool}
}

// List returns every realm in the realmlist. An empty realmlist is a valid
// result, not an error.
func (r *RealmRepository) List(ctx context.Context) ([]auth.Realm, error) {
	rows, err := querierFromCtx(ctx, r.pool).Query(ctx, `
		SELECT id, name, port FROM realmlist ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("REALM_LIST_FAILED").
			With("operation", "query realmlist").
			Wrap(err)
	}
	defer rows.Close()

	var realms []auth.Realm
	for rows.Next() {
		var realm auth.Realm
		if err := rows.Scan(&realm.ID, &realm.Name, &realm.Port); err != nil {
			return nil, oops.Code("REALM_SCAN_FAILED").
				With("operation", "scan realm row").
				Wrap(err)
		}
		realms = append(realms, realm)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("REALM_LIST_FAILED").
			With("operation", "iterate realmlist").
			Wrap(err)
	}
	return realms, nil
}

// Compile-time interface check.
var _ auth.RealmRepository = (*RealmRepository)(nil)
