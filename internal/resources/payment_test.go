package resources

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/payrail-go/internal/amount"
	"github.com/payrail-go/internal/constants"
)

func assertAmounts(t *testing.T, p *Payment, remaining, charged, total, canceled float64) {
	t.Helper()
	am := p.ComputeAmounts()
	if !amount.Equal(am.Remaining, amount.FromFloat(remaining)) {
		t.Fatalf("remaining: expected %v, got %s", remaining, am.Remaining)
	}
	if !amount.Equal(am.Charged, amount.FromFloat(charged)) {
		t.Fatalf("charged: expected %v, got %s", charged, am.Charged)
	}
	if !amount.Equal(am.Total, amount.FromFloat(total)) {
		t.Fatalf("total: expected %v, got %s", total, am.Total)
	}
	if !amount.Equal(am.Canceled, amount.FromFloat(canceled)) {
		t.Fatalf("canceled: expected %v, got %s", canceled, am.Canceled)
	}
}

func withAuthorization(p *Payment, value float64) *Authorization {
	auth := &Authorization{ID: "s-aut-1", Amount: amount.FromFloat(value)}
	p.SetAuthorization(auth)
	return auth
}

func withCharge(p *Payment, id string, value float64) *Charge {
	charge := &Charge{ID: id, Amount: amount.FromFloat(value)}
	p.AddCharge(charge)
	return charge
}

func cancelAgainstAuthorization(auth *Authorization, value float64) {
	auth.AddCancellation(&Cancellation{
		Kind:     constants.TransactionTypeCancelAuthorize,
		TargetID: auth.ID,
		Amount:   amount.FromFloat(value),
	})
}

func cancelAgainstCharge(charge *Charge, value float64) {
	charge.AddCancellation(&Cancellation{
		Kind:     constants.TransactionTypeCancelCharge,
		TargetID: charge.ID,
		Amount:   amount.FromFloat(value),
	})
}

func TestEmptyPaymentIsPending(t *testing.T) {
	p := NewPayment(&Card{})
	if !p.IsPending() {
		t.Fatalf("expected fresh payment pending, got %s", p.Status())
	}
	assertAmounts(t, p, 0, 0, 0, 0)
}

func TestAuthorizedPaymentIsPending(t *testing.T) {
	p := NewPayment(&Card{})
	withAuthorization(p, 100.0)
	if !p.IsPending() {
		t.Fatalf("expected pending, got %s", p.Status())
	}
	assertAmounts(t, p, 100.0, 0, 100.0, 0)
}

func TestFullyCanceledAuthorizationIsCanceled(t *testing.T) {
	p := NewPayment(&Card{})
	auth := withAuthorization(p, 100.0)
	cancelAgainstAuthorization(auth, 100.0)
	if !p.IsCanceled() {
		t.Fatalf("expected canceled, got %s", p.Status())
	}
	assertAmounts(t, p, 0, 0, 100.0, 100.0)
}

func TestPartlyCanceledAuthorizationStaysPending(t *testing.T) {
	p := NewPayment(&Card{})
	auth := withAuthorization(p, 100.0)
	cancelAgainstAuthorization(auth, 10.0)
	if !p.IsPending() {
		t.Fatalf("expected pending, got %s", p.Status())
	}
	am := p.ComputeAmounts()
	if !amount.Equal(am.Remaining, amount.FromFloat(90.0)) {
		t.Fatalf("expected remaining 90, got %s", am.Remaining)
	}
}

func TestDirectChargeIsCompleted(t *testing.T) {
	p := NewPayment(&Invoice{})
	withCharge(p, "s-chg-1", 123.44)
	if !p.IsCompleted() {
		t.Fatalf("expected completed, got %s", p.Status())
	}
	assertAmounts(t, p, 0, 123.44, 123.44, 0)
}

func TestPartlyChargedAuthorizationIsPartlyPaid(t *testing.T) {
	p := NewPayment(&Card{})
	withAuthorization(p, 123.44)
	withCharge(p, "s-chg-1", 100.44)
	if !p.IsPartlyPaid() {
		t.Fatalf("expected partly paid, got %s", p.Status())
	}
	assertAmounts(t, p, 23.0, 100.44, 123.44, 0)
}

func TestFullyChargedAuthorizationIsCompleted(t *testing.T) {
	p := NewPayment(&Card{})
	withAuthorization(p, 123.44)
	withCharge(p, "s-chg-1", 100.44)
	withCharge(p, "s-chg-2", 23.00)
	if !p.IsCompleted() {
		t.Fatalf("expected completed, got %s", p.Status())
	}
	assertAmounts(t, p, 0, 123.44, 123.44, 0)
}

func TestFullyChargedThenFullyCanceledIsCanceledNotCompleted(t *testing.T) {
	p := NewPayment(&Card{})
	withAuthorization(p, 123.44)
	first := withCharge(p, "s-chg-1", 100.44)
	second := withCharge(p, "s-chg-2", 23.00)
	cancelAgainstCharge(first, 100.44)
	cancelAgainstCharge(second, 23.00)
	if !p.IsCanceled() {
		t.Fatalf("expected canceled to win over completed, got %s", p.Status())
	}
	assertAmounts(t, p, 0, 0, 123.44, 123.44)
}

func TestPartialChargeCancelKeepsCompleted(t *testing.T) {
	p := NewPayment(&Invoice{})
	charge := withCharge(p, "s-chg-1", 222.33)
	cancelAgainstCharge(charge, 123.12)
	if !p.IsCompleted() {
		t.Fatalf("expected completed, got %s", p.Status())
	}
	assertAmounts(t, p, 0, 99.21, 222.33, 123.12)
}

func TestAuthReversalShrinksTotalOnceCharged(t *testing.T) {
	p := NewPayment(&Card{})
	auth := withAuthorization(p, 100.0)
	charge := withCharge(p, "s-chg-1", 40.0)
	cancelAgainstAuthorization(auth, 60.0)
	cancelAgainstCharge(charge, 20.0)
	if !p.IsCompleted() {
		t.Fatalf("expected completed, got %s", p.Status())
	}
	assertAmounts(t, p, 0, 20.0, 40.0, 20.0)
}

func TestChargebackDominates(t *testing.T) {
	p := NewPayment(&Card{})
	withAuthorization(p, 100.0)
	withCharge(p, "s-chg-1", 100.0)
	p.MarkChargeback()
	if !p.IsChargeback() {
		t.Fatalf("expected chargeback, got %s", p.Status())
	}
}

func TestRemoteErrorStatus(t *testing.T) {
	p := NewPayment(&Card{})
	p.MarkRemoteError()
	if !p.IsError() {
		t.Fatalf("expected error status, got %s", p.Status())
	}
	// 授权仍开放时 Pending 优先于 Error
	withAuthorization(p, 50.0)
	if !p.IsPending() {
		t.Fatalf("expected pending to shadow error, got %s", p.Status())
	}
	p.ClearRemoteError()
	if !p.IsPending() {
		t.Fatalf("expected pending after error cleared, got %s", p.Status())
	}
}

func TestResetDropsLocalState(t *testing.T) {
	p := NewPayment(&Card{})
	withAuthorization(p, 100.0)
	withCharge(p, "s-chg-1", 40.0)
	p.MarkChargeback()
	p.Reset()
	if p.Authorization != nil || len(p.Charges) != 0 || len(p.Shipments) != 0 {
		t.Fatalf("expected collections cleared")
	}
	if p.IsChargeback() {
		t.Fatalf("chargeback flag must not survive reset")
	}
	assertAmounts(t, p, 0, 0, 0, 0)
}

func TestBackReferences(t *testing.T) {
	p := NewPayment(&Card{})
	auth := withAuthorization(p, 100.0)
	charge := withCharge(p, "s-chg-1", 40.0)
	cancelAgainstCharge(charge, 10.0)
	if auth.Payment() != p || charge.Payment() != p {
		t.Fatalf("transactions must point back at owning payment")
	}
	if charge.Cancellations[0].Payment() != p {
		t.Fatalf("cancellation must point back at owning payment")
	}
}

func TestTransactionRemainders(t *testing.T) {
	charge := &Charge{ID: "s-chg-1", Amount: amount.FromFloat(50.0)}
	cancelAgainstCharge(charge, 20.0)
	if !amount.Equal(charge.Remaining(), amount.FromFloat(30.0)) {
		t.Fatalf("expected remaining 30, got %s", charge.Remaining())
	}
	cancelAgainstCharge(charge, 30.0)
	if !charge.IsCanceled() {
		t.Fatalf("expected charge fully canceled")
	}
	if !charge.Remaining().Equal(decimal.Zero) {
		t.Fatalf("expected zero remaining, got %s", charge.Remaining())
	}
}
