package ledgercalc

import (
	"fmt"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedDelta applies the account-kind sign convention to a debit/credit
// pair. This is the single place the convention lives; both services and
// repositories go through it.
//
// CUSTOMER (receivable): delta = debit - credit
// PARTNER  (payable):    delta = credit - debit
func SignedDelta(kind domain.AccountKind, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch kind {
	case domain.KindCustomer:
		return debit.Sub(credit), nil
	case domain.KindPartner:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account kind %q", kind)
	}
}

// NextBalance computes the balance snapshot for a new ledger entry given
// the previous balance of the same account.
func NextBalance(kind domain.AccountKind, previous, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	delta, err := SignedDelta(kind, debit, credit)
	if err != nil {
		return decimal.Zero, err
	}
	return previous.Add(delta), nil
}
