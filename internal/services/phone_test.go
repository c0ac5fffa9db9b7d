package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhone(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"0912345678", "0912345678", false},
		{"091-234-5678", "0912345678", false},
		{"091.234.5678", "0912345678", false},
		{" 0912 345 678 ", "0912345678", false},
		{"09123456789", "09123456789", false},
		{"091234567", "", true},
		{"091234567890", "", true},
		{"09a2345678", "", true},
		{"+84912345678", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePhone(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
