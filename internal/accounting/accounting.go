// Package accounting implements the accounting sink that receives every
// completed sale.
package accounting

import (
	"context"

	"go.uber.org/zap"

	"github.com/storekit/pos-engine/internal/domain/sale"
)

// Service records completed sales for bookkeeping. This implementation
// stands in for the external accounting system and logs each sale as a
// structured event.
type Service struct {
	lg *zap.Logger
}

// NewService creates an accounting Service.
func NewService(lg *zap.Logger) *Service {
	return &Service{lg: lg}
}

// Record reports a completed sale to the accounting system.
func (s *Service) Record(_ context.Context, info sale.Snapshot) error {
	s.lg.Info("Sale recorded in accounting",
		zap.String("sale_id", info.ID),
		zap.Int("customer_id", info.CustomerID),
		zap.String("total", info.TotalAfterDiscount.StringFixed()),
		zap.String("vat", info.TotalTax.StringFixed()),
		zap.Int("lines", len(info.Lines)))
	return nil
}
