package statement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/account"
)

func newTestService(t *testing.T) (*Service, account.Account) {
	t.Helper()
	accounts := account.NewMemoryRepository()
	accountSvc := account.NewService(accounts)

	acct, err := accountSvc.Register(context.Background(), account.RegisterInput{
		Name:     "Zed Master",
		Email:    "zedmaster@gmail.com",
		Password: "123456",
	})
	if err != nil {
		t.Fatalf("register account: %v", err)
	}

	return NewService(NewInMemory(), accounts, nil), acct
}

func TestCreateStatementDeposit(t *testing.T) {
	svc, acct := newTestService(t)
	ctx := context.Background()

	st, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: "deposit", Amount: 50, Description: "wages"})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	if _, err := uuid.Parse(st.ID); err != nil {
		t.Fatalf("expected uuid statement id, got %q", st.ID)
	}
	if st.AccountID != acct.ID || st.Kind != KindDeposit || st.Amount != 50 {
		t.Fatalf("unexpected statement: %+v", st)
	}
	if st.CreatedAt.IsZero() || st.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestWithdrawUpdatesBalance(t *testing.T) {
	svc, acct := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: "deposit", Amount: 50, Description: "wages"}); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: "withdraw", Amount: 40, Description: "rent"}); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	sheet, err := svc.GetBalance(ctx, acct.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if sheet.Balance != 10 {
		t.Fatalf("expected balance 10, got %d", sheet.Balance)
	}
	if len(sheet.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(sheet.Statements))
	}
	if sheet.Statements[0].Kind != KindDeposit || sheet.Statements[1].Kind != KindWithdraw {
		t.Fatalf("statements out of creation order: %+v", sheet.Statements)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	svc, acct := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: "deposit", Amount: 50, Description: "wages"}); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: "withdraw", Amount: 40, Description: "rent"}); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	_, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: "withdraw", Amount: 40, Description: "rent"})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// The failed withdrawal must not mutate the ledger.
	sheet, err := svc.GetBalance(ctx, acct.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if sheet.Balance != 10 {
		t.Fatalf("expected balance 10 after rejected withdrawal, got %d", sheet.Balance)
	}
	if len(sheet.Statements) != 2 {
		t.Fatalf("expected 2 statements after rejected withdrawal, got %d", len(sheet.Statements))
	}
}

func TestCreateStatementUnknownAccount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, kind := range []string{"deposit", "withdraw"} {
		_, err := svc.CreateStatement(ctx, CreateInput{AccountID: uuid.NewString(), Kind: kind, Amount: 40, Description: "rent"})
		if !errors.Is(err, account.ErrNotFound) {
			t.Fatalf("kind %s: expected account.ErrNotFound, got %v", kind, err)
		}
	}
}

func TestCreateStatementInvalidInput(t *testing.T) {
	svc, acct := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"zero amount", CreateInput{AccountID: acct.ID, Kind: "deposit", Amount: 0, Description: "wages"}},
		{"negative amount", CreateInput{AccountID: acct.ID, Kind: "withdraw", Amount: -5, Description: "rent"}},
		{"empty description", CreateInput{AccountID: acct.ID, Kind: "deposit", Amount: 10, Description: "  "}},
		{"unknown kind", CreateInput{AccountID: acct.ID, Kind: "transfer", Amount: 10, Description: "x"}},
	}

	for _, tc := range cases {
		if _, err := svc.CreateStatement(ctx, tc.input); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	// Rejected inputs never reach the ledger.
	sheet, err := svc.GetBalance(ctx, acct.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if len(sheet.Statements) != 0 {
		t.Fatalf("expected empty ledger, got %d statements", len(sheet.Statements))
	}
}

func TestGetBalanceIsIdempotent(t *testing.T) {
	svc, acct := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: "deposit", Amount: 50, Description: "wages"}); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	first, err := svc.GetBalance(ctx, acct.ID)
	if err != nil {
		t.Fatalf("first balance: %v", err)
	}
	second, err := svc.GetBalance(ctx, acct.ID)
	if err != nil {
		t.Fatalf("second balance: %v", err)
	}

	if first.Balance != second.Balance || len(first.Statements) != len(second.Statements) {
		t.Fatalf("reads not idempotent: %+v vs %+v", first, second)
	}
}

func TestGetBalanceUnknownAccount(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.GetBalance(context.Background(), uuid.NewString()); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected account.ErrNotFound, got %v", err)
	}
}

func TestGetStatementOperation(t *testing.T) {
	svc, acct := newTestService(t)
	ctx := context.Background()

	st, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: "deposit", Amount: 50, Description: "wages"})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	found, err := svc.GetStatementOperation(ctx, acct.ID, st.ID)
	if err != nil {
		t.Fatalf("get operation: %v", err)
	}
	if found.ID != st.ID || found.AccountID != acct.ID {
		t.Fatalf("unexpected operation: %+v", found)
	}
}

func TestGetStatementOperationUnknownStatement(t *testing.T) {
	svc, acct := newTestService(t)

	_, err := svc.GetStatementOperation(context.Background(), acct.ID, uuid.NewString())
	if !errors.Is(err, ErrStatementNotFound) {
		t.Fatalf("expected ErrStatementNotFound, got %v", err)
	}
}

func TestGetStatementOperationOwnershipIsolation(t *testing.T) {
	accounts := account.NewMemoryRepository()
	accountSvc := account.NewService(accounts)
	svc := NewService(NewInMemory(), accounts, nil)
	ctx := context.Background()

	owner, err := accountSvc.Register(ctx, account.RegisterInput{Name: "Owner", Email: "owner@example.com", Password: "123456"})
	if err != nil {
		t.Fatalf("register owner: %v", err)
	}
	other, err := accountSvc.Register(ctx, account.RegisterInput{Name: "Other", Email: "other@example.com", Password: "123456"})
	if err != nil {
		t.Fatalf("register other: %v", err)
	}

	st, err := svc.CreateStatement(ctx, CreateInput{AccountID: owner.ID, Kind: "deposit", Amount: 50, Description: "wages"})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	// The statement exists but belongs to someone else: must look missing.
	_, err = svc.GetStatementOperation(ctx, other.ID, st.ID)
	if !errors.Is(err, ErrStatementNotFound) {
		t.Fatalf("expected ErrStatementNotFound, got %v", err)
	}

	_, err = svc.GetStatementOperation(ctx, uuid.NewString(), st.ID)
	if !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected account.ErrNotFound, got %v", err)
	}
}

type failingPublisher struct {
	calls int
}

func (p *failingPublisher) Publish(_ context.Context, _ string, _ any) error {
	p.calls++
	return errors.New("broker unreachable")
}

func TestCreateStatementSurvivesPublishFailure(t *testing.T) {
	accounts := account.NewMemoryRepository()
	accountSvc := account.NewService(accounts)
	pub := &failingPublisher{}
	svc := NewService(NewInMemory(), accounts, pub)
	ctx := context.Background()

	acct, err := accountSvc.Register(ctx, account.RegisterInput{Name: "Zed Master", Email: "zedmaster@gmail.com", Password: "123456"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// The statement is committed before the publish; a broker failure must
	// not surface to the caller or roll anything back.
	st, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: "deposit", Amount: 50, Description: "wages"})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if pub.calls != 1 {
		t.Fatalf("expected 1 publish attempt, got %d", pub.calls)
	}

	sheet, err := svc.GetBalance(ctx, acct.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if sheet.Balance != 50 || len(sheet.Statements) != 1 || sheet.Statements[0].ID != st.ID {
		t.Fatalf("statement not committed: %+v", sheet)
	}
}

func TestBalanceMatchesStatementSums(t *testing.T) {
	svc, acct := newTestService(t)
	ctx := context.Background()

	ops := []struct {
		kind   string
		amount int64
	}{
		{"deposit", 1_000},
		{"withdraw", 250},
		{"deposit", 75},
		{"withdraw", 300},
		{"deposit", 10},
	}

	var deposits, withdrawals int64
	for _, op := range ops {
		if _, err := svc.CreateStatement(ctx, CreateInput{AccountID: acct.ID, Kind: op.kind, Amount: op.amount, Description: "op"}); err != nil {
			t.Fatalf("%s %d: %v", op.kind, op.amount, err)
		}
		if op.kind == "deposit" {
			deposits += op.amount
		} else {
			withdrawals += op.amount
		}
	}

	sheet, err := svc.GetBalance(ctx, acct.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if want := deposits - withdrawals; sheet.Balance != want {
		t.Fatalf("expected balance %d, got %d", want, sheet.Balance)
	}
	if len(sheet.Statements) != len(ops) {
		t.Fatalf("expected %d statements, got %d", len(ops), len(sheet.Statements))
	}
}
