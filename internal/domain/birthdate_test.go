package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBirthDate(t *testing.T) {
	now := time.Now()

	t.Run("age at the maximum bound is accepted", func(t *testing.T) {
		bd, err := NewBirthDate(now.AddDate(-18, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, 18, bd.Age())
	})

	t.Run("age above the maximum bound is rejected", func(t *testing.T) {
		_, err := NewBirthDate(now.AddDate(-19, 0, 0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximum age is 18")
	})

	t.Run("future date is rejected", func(t *testing.T) {
		_, err := NewBirthDate(now.AddDate(0, 0, 1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("custom bounds apply", func(t *testing.T) {
		_, err := NewBirthDateWithBounds(now.AddDate(-4, 0, 0), 6, 18)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "minimum age is 6")

		_, err = NewBirthDateWithBounds(now.AddDate(-20, 0, 0), 0, 25)
		assert.NoError(t, err)
	})
}

func TestBirthDateAge(t *testing.T) {
	now := time.Now()

	t.Run("birthday not yet reached this year", func(t *testing.T) {
		bd, err := NewBirthDate(now.AddDate(-10, 0, 5))
		require.NoError(t, err)
		assert.Equal(t, 9, bd.Age())
	})

	t.Run("birthday already passed this year", func(t *testing.T) {
		bd, err := NewBirthDate(now.AddDate(-10, 0, -5))
		require.NoError(t, err)
		assert.Equal(t, 10, bd.Age())
	})
}

func TestBirthDateEqual(t *testing.T) {
	date := time.Date(2015, 6, 15, 0, 0, 0, 0, time.UTC)
	a, err := NewBirthDate(date)
	require.NoError(t, err)
	b, err := NewBirthDate(date)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, date, a.Date())
}
