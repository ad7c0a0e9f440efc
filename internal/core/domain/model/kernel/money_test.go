package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates amount from cents", func(t *testing.T) {
		m, err := kernel.NewMoney(450)

		require.NoError(t, err)
		assert.Equal(t, int64(450), m.Cents())
	})

	t.Run("zero is a valid amount", func(t *testing.T) {
		m, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("Add sums two amounts", func(t *testing.T) {
		a, _ := kernel.NewMoney(450)
		b, _ := kernel.NewMoney(150)

		assert.Equal(t, int64(600), a.Add(b).Cents())
	})

	t.Run("MultiplyBy scales by quantity", func(t *testing.T) {
		price, _ := kernel.NewMoney(450)

		assert.Equal(t, int64(1350), price.MultiplyBy(3).Cents())
	})

	t.Run("MultiplyBy zero quantity is zero", func(t *testing.T) {
		price, _ := kernel.NewMoney(450)

		assert.Equal(t, int64(0), price.MultiplyBy(0).Cents())
	})
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{450, "4.50"},
		{1350, "13.50"},
	}

	for _, tc := range testCases {
		m, err := kernel.NewMoney(tc.cents)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, m.String())
	}
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoney(100)
	b, _ := kernel.NewMoney(100)
	c, _ := kernel.NewMoney(200)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
