package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeletionOrder(t *testing.T) {
	tests := []struct {
		name   string
		tables []string
		want   []string
	}{
		{
			name:   "known tables in reverse dependency order",
			tables: []string{"admins", "stocks", "users", "stock_assignments", "stock_histories"},
			want:   []string{"stock_histories", "stock_assignments", "stocks", "users", "admins"},
		},
		{
			name:   "unknown tables last alphabetically",
			tables: []string{"zeta", "admins", "raw_records", "alpha", "reports"},
			want:   []string{"reports", "admins", "alpha", "raw_records", "zeta"},
		},
		{
			name:   "duplicates collapse",
			tables: []string{"users", "users"},
			want:   []string{"users"},
		},
		{
			name:   "empty",
			tables: nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeletionOrder(tt.tables))
		})
	}
}
