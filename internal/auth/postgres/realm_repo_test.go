// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demigame/demiserver/internal/auth"
)

func TestRealmRepository_List(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      []auth.Realm
		wantErr   bool
	}{
		{
			name: "two realms in id order",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "port"}).
					AddRow(int32(1), "Azeroth", int32(4101)).
					AddRow(int32(2), "Outland", int32(4102))
				mock.ExpectQuery(`SELECT id, name, port FROM realmlist ORDER BY id`).
					WillReturnRows(rows)
			},
			want: []auth.Realm{
				{ID: 1, Name: "Azeroth", Port: 4101},
				{ID: 2, Name: "Outland", Port: 4102},
			},
		},
		{
			name: "empty realmlist",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, port FROM realmlist ORDER BY id`).
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "port"}))
			},
			want: nil,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, port FROM realmlist ORDER BY id`).
					WillReturnError(errors.New("timeout"))
			},
			wantErr: true,
		},
		{
			name: "row iteration error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "port"}).
					AddRow(int32(1), "Azeroth", int32(4101)).
					RowError(0, errors.New("row iteration error"))
				mock.ExpectQuery(`SELECT id, name, port FROM realmlist ORDER BY id`).
					WillReturnRows(rows)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewRealmRepository(mock)
			got, err := repo.List(context.Background())

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}
