// Package register implements the process-wide cash register: a running
// balance of settled payments with synchronous observer notification.
package register

import (
	"fmt"
	"sync"

	"github.com/go-faster/errors"

	"github.com/storekit/pos-engine/internal/domain/money"
)

// NegativePaymentError indicates a caller tried to record a negative
// payment. The balance does not change when it is returned.
type NegativePaymentError struct {
	Amount money.Amount
}

func (e *NegativePaymentError) Error() string {
	return fmt.Sprintf("payment must not be negative, got %s", e.Amount)
}

// Observer is notified of every settled payment. Returning an error aborts
// notification of observers subscribed after this one for that payment.
type Observer interface {
	NewPayment(amount money.Amount) error
}

// Register accumulates settled payments and fans each one out to its
// observers. One Register instance serves the whole process and outlives
// individual sales, so all operations are safe for concurrent use: the
// balance update and the observer fan-out happen atomically per payment.
type Register struct {
	mu        sync.Mutex
	balance   money.Amount
	observers []Observer
}

// New creates a Register with a zero balance and no observers.
func New() *Register {
	return &Register{balance: money.Zero()}
}

// RecordPayment adds amount to the balance and notifies every subscribed
// observer synchronously, in subscription order, with the same amount.
//
// An observer error aborts the remaining notifications for this payment and
// is returned wrapped; the balance update is kept. Callers that need
// per-observer isolation must wrap their observers accordingly.
func (r *Register) RecordPayment(amount money.Amount) error {
	if amount.IsNegative() {
		return &NegativePaymentError{Amount: amount}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.balance = r.balance.Add(amount)

	for _, obs := range r.observers {
		if err := obs.NewPayment(amount); err != nil {
			return errors.Wrap(err, "notify payment observer")
		}
	}
	return nil
}

// Subscribe registers an observer. Subscribing the same observer twice
// yields two notifications per payment; no deduplication is performed.
func (r *Register) Subscribe(obs Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, obs)
}

// Unsubscribe removes the first subscription of the given observer, if any.
func (r *Register) Unsubscribe(obs Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.observers {
		if existing == obs {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Balance returns the current balance. The returned value is independent of
// the register's internal state.
func (r *Register) Balance() money.Amount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balance
}
