// Copyright (c) 2026 EasyBuy. All rights reserved.

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/easybuy/api/internal/platform/migration"
)

/*
TestPgx5DSN covers the scheme rewrite.
*/
func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/easybuy", "pgx5://u:p@db:5432/easybuy"},
		{"postgresql://u@db/easybuy?sslmode=disable", "pgx5://u@db/easybuy?sslmode=disable"},
		{"pgx5://u@db/easybuy", "pgx5://u@db/easybuy"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, migration.Pgx5DSN(tt.in))
	}
}
