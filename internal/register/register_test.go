package register

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/pos-engine/internal/domain/money"
)

type recordingObserver struct {
	name     string
	payments []money.Amount
	log      *[]string
	err      error
}

func (o *recordingObserver) NewPayment(amount money.Amount) error {
	o.payments = append(o.payments, amount)
	if o.log != nil {
		*o.log = append(*o.log, o.name)
	}
	return o.err
}

func m(v string) money.Amount {
	return money.RequireFromString(v)
}

func TestRecordPayment_Accumulates(t *testing.T) {
	r := New()

	require.NoError(t, r.RecordPayment(m("100")))
	require.NoError(t, r.RecordPayment(m("50")))

	assert.True(t, m("150").Equal(r.Balance()))
}

func TestRecordPayment_RejectsNegative(t *testing.T) {
	r := New()

	err := r.RecordPayment(m("-1"))

	var npErr *NegativePaymentError
	require.ErrorAs(t, err, &npErr)
	assert.True(t, r.Balance().IsZero())
}

func TestBalance_ReturnsIndependentCopy(t *testing.T) {
	r := New()
	require.NoError(t, r.RecordPayment(m("100")))

	balance := r.Balance()
	_ = balance.Add(m("999"))

	assert.True(t, m("100").Equal(r.Balance()))
}

func TestObservers_NotifiedInSubscriptionOrder(t *testing.T) {
	r := New()
	var log []string
	first := &recordingObserver{name: "first", log: &log}
	second := &recordingObserver{name: "second", log: &log}
	r.Subscribe(first)
	r.Subscribe(second)

	require.NoError(t, r.RecordPayment(m("125")))

	assert.Equal(t, []string{"first", "second"}, log)
	require.Len(t, first.payments, 1)
	assert.True(t, m("125").Equal(first.payments[0]))
	require.Len(t, second.payments, 1)
	assert.True(t, m("125").Equal(second.payments[0]))
}

func TestObservers_DoubleSubscriptionNotifiedTwice(t *testing.T) {
	r := New()
	obs := &recordingObserver{name: "twice"}
	r.Subscribe(obs)
	r.Subscribe(obs)

	require.NoError(t, r.RecordPayment(m("10")))

	assert.Len(t, obs.payments, 2)
}

func TestObservers_ErrorAbortsRemainingNotifications(t *testing.T) {
	r := New()
	var log []string
	failing := &recordingObserver{name: "failing", log: &log, err: errors.New("disk full")}
	after := &recordingObserver{name: "after", log: &log}
	r.Subscribe(failing)
	r.Subscribe(after)

	err := r.RecordPayment(m("10"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{"failing"}, log, "observer after the failing one must not be notified")

	// Balance update is kept even when notification fails.
	assert.True(t, m("10").Equal(r.Balance()))
}

func TestUnsubscribe(t *testing.T) {
	r := New()
	obs := &recordingObserver{name: "obs"}
	other := &recordingObserver{name: "other"}
	r.Subscribe(obs)
	r.Subscribe(other)

	r.Unsubscribe(obs)
	require.NoError(t, r.RecordPayment(m("10")))

	assert.Empty(t, obs.payments)
	assert.Len(t, other.payments, 1)
}

func TestUnsubscribe_UnknownObserverIsNoop(t *testing.T) {
	r := New()
	r.Subscribe(&recordingObserver{name: "kept"})

	r.Unsubscribe(&recordingObserver{name: "stranger"})

	require.NoError(t, r.RecordPayment(m("5")))
	assert.True(t, m("5").Equal(r.Balance()))
}
