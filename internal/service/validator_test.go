package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eiborservice/internal/repository"
)

func TestValidator(t *testing.T) {
	all := NewValidator()
	tests := []struct {
		tenor string
		valid bool
	}{
		{"overnight", true},
		{"1_week", true},
		{"3_MONTH", true},  // case-insensitive
		{" 1_year ", true}, // trimmed
		{"3 Months", true}, // published label
		{"o/n", true},
		{"2_month", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.tenor, func(t *testing.T) {
			_, err := all.Parse(tc.tenor)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTenor)
			assert.ErrorIs(t, err, repository.ErrUnknownTenor)
		})
	}

	got, err := all.Parse("6 Months")
	require.NoError(t, err)
	assert.Equal(t, repository.Tenor6Month, got)

	restricted := NewValidator(repository.Tenor3Month, repository.Tenor6Month)
	got, err = restricted.Parse("6_MONTH")
	require.NoError(t, err)
	assert.Equal(t, repository.Tenor6Month, got)
	_, err = restricted.Parse("overnight")
	assert.ErrorIs(t, err, ErrInvalidTenor)
	assert.NotErrorIs(t, err, repository.ErrUnknownTenor)
}

func TestParseTenors(t *testing.T) {
	v := NewValidator()

	got, err := parseTenors(v, nil)
	require.NoError(t, err)
	assert.Equal(t, repository.AllTenors, got)

	got, err = parseTenors(v, []string{"6_month", "overnight", "6_month"})
	require.NoError(t, err)
	assert.Equal(t, []repository.Tenor{repository.Tenor6Month, repository.TenorOvernight}, got)

	_, err = parseTenors(v, []string{"overnight", "bogus"})
	assert.ErrorIs(t, err, ErrInvalidTenor)
}
