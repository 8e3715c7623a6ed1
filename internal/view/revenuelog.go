package view

import (
	"io"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/storekit/pos-engine/internal/domain/money"
)

// RevenueLog is a payment observer that appends one JSON line per settled
// payment to a log, carrying the payment and the cumulative revenue.
// Notification ordering is guaranteed by the cash register, so no internal
// locking is needed.
type RevenueLog struct {
	w      io.Writer
	closer io.Closer
	total  money.Amount
	now    func() time.Time
}

// OpenRevenueLog opens (or creates) the log file at path in append mode.
func OpenRevenueLog(path string) (*RevenueLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open revenue log")
	}
	log := NewRevenueLogWriter(f)
	log.closer = f
	return log, nil
}

// NewRevenueLogWriter creates a RevenueLog writing to w. Used by tests and
// callers that manage the underlying file themselves.
func NewRevenueLogWriter(w io.Writer) *RevenueLog {
	return &RevenueLog{w: w, total: money.Zero(), now: time.Now}
}

// NewPayment appends a log line for the payment.
func (l *RevenueLog) NewPayment(amount money.Amount) error {
	l.total = l.total.Add(amount)

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("time")
	e.Str(l.now().Format(time.RFC3339))
	e.FieldStart("payment")
	e.Str(amount.StringFixed())
	e.FieldStart("total_revenue")
	e.Str(l.total.StringFixed())
	e.ObjEnd()

	line := append(e.Bytes(), '\n')
	if _, err := l.w.Write(line); err != nil {
		return errors.Wrap(err, "append revenue log")
	}
	return nil
}

// Close closes the underlying file, when the log owns one.
func (l *RevenueLog) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
