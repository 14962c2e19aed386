package statement

import "time"

// Kind enumerates the two statement operation types.
type Kind string

const (
	// KindDeposit credits the account balance.
	KindDeposit Kind = "deposit"
	// KindWithdraw debits the account balance.
	KindWithdraw Kind = "withdraw"
)

// ParseKind validates a wire-level kind string.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindDeposit:
		return KindDeposit, true
	case KindWithdraw:
		return KindWithdraw, true
	default:
		return "", false
	}
}

// Statement is an immutable record of a single deposit or withdrawal.
// Amounts are held in integer minor units (cents).
type Statement struct {
	ID          string
	AccountID   string
	Kind        Kind
	Amount      int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Signed returns the amount with the sign its kind contributes to the balance.
func (s Statement) Signed() int64 {
	if s.Kind == KindWithdraw {
		return -s.Amount
	}
	return s.Amount
}

// BalanceSheet is the read-side view of an account: the derived balance and
// the full statement history in insertion order.
type BalanceSheet struct {
	Balance    int64
	Statements []Statement
}
