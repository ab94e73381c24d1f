package vlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecyclePool(t *testing.T) {
	t.Run("WithdrawEmpty", func(t *testing.T) {
		p := NewRecyclePool[string, *testRes]()
		r, ok := p.Withdraw("row")
		assert.False(t, ok)
		assert.Nil(t, r)
	})

	t.Run("DepositThenWithdraw", func(t *testing.T) {
		p := NewRecyclePool[string, *testRes]()
		a := &testRes{kind: "row", id: 1}
		require.NoError(t, p.Deposit(a))
		assert.True(t, p.Contains(a))

		got, ok := p.Withdraw("row")
		require.True(t, ok)
		assert.Same(t, a, got)
		assert.False(t, p.Contains(a))
		assert.Equal(t, 0, p.Len())
	})

	t.Run("LastDepositFirst", func(t *testing.T) {
		p := NewRecyclePool[string, *testRes]()
		a := &testRes{kind: "row", id: 1}
		b := &testRes{kind: "row", id: 2}
		require.NoError(t, p.Deposit(a))
		require.NoError(t, p.Deposit(b))

		got, _ := p.Withdraw("row")
		assert.Same(t, b, got)
		got, _ = p.Withdraw("row")
		assert.Same(t, a, got)
		_, ok := p.Withdraw("row")
		assert.False(t, ok)
	})

	t.Run("KindsAreSeparate", func(t *testing.T) {
		p := NewRecyclePool[string, *testRes]()
		header := &testRes{kind: "header"}
		require.NoError(t, p.Deposit(header))

		_, ok := p.Withdraw("row")
		assert.False(t, ok)
		assert.Equal(t, 1, p.LenKind("header"))
		assert.Equal(t, 0, p.LenKind("row"))

		got, ok := p.Withdraw("header")
		require.True(t, ok)
		assert.Same(t, header, got)
	})

	t.Run("DoubleDeposit", func(t *testing.T) {
		p := NewRecyclePool[string, *testRes]()
		a := &testRes{kind: "row"}
		require.NoError(t, p.Deposit(a))

		err := p.Deposit(a)
		var ie *InvariantViolationError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, "deposit", ie.Op)
		assert.Equal(t, 1, p.Len(), "pool unchanged")
		assert.Equal(t, 1, p.LenKind("row"))
	})

	t.Run("RedepositAfterWithdraw", func(t *testing.T) {
		p := NewRecyclePool[string, *testRes]()
		a := &testRes{kind: "row"}
		require.NoError(t, p.Deposit(a))
		_, _ = p.Withdraw("row")
		assert.NoError(t, p.Deposit(a))
	})
}
