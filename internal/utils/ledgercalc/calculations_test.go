package ledgercalc

import (
	"testing"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedDelta(t *testing.T) {
	debit := decimal.NewFromInt(150)
	credit := decimal.NewFromInt(40)

	// Customer receivable: debit increases what the customer owes
	delta, err := SignedDelta(domain.KindCustomer, debit, credit)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(110).Equal(delta))

	// Partner payable: credit increases what the shop owes
	delta, err = SignedDelta(domain.KindPartner, debit, credit)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-110).Equal(delta))

	_, err = SignedDelta(domain.AccountKind("VENDOR"), debit, credit)
	assert.Error(t, err)
}

func TestNextBalance(t *testing.T) {
	previous := decimal.NewFromInt(500)

	// Customer pays 200: balance drops
	balance, err := NextBalance(domain.KindCustomer, previous, decimal.Zero, decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(balance))

	// Credit sale of 250: balance rises
	balance, err = NextBalance(domain.KindCustomer, previous, decimal.NewFromInt(250), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(750).Equal(balance))

	// Goods receipt of 100 from a partner: payable rises
	balance, err = NextBalance(domain.KindPartner, previous, decimal.Zero, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(balance))

	// Balances may go negative (customer in credit)
	balance, err = NextBalance(domain.KindCustomer, decimal.NewFromInt(50), decimal.Zero, decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-30).Equal(balance))

	_, err = NextBalance(domain.AccountKind(""), previous, decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}
