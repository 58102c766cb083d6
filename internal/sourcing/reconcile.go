package sourcing

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	baseToleranceRate    = decimal.RequireFromString("0.0075")
	reliabilitySlope     = decimal.RequireFromString("0.03")
	defaultToleranceRate = decimal.RequireFromString("0.015")
	minToleranceRate     = decimal.RequireFromString("0.01")
	priceMismatchRate    = decimal.RequireFromString("0.02")
	freightRate          = decimal.RequireFromString("0.05")
)

// ToleranceRate is the share of the ordered amount a supplier may deviate by.
func ToleranceRate(supplier *domain.SupplierProfile) decimal.Decimal {
	if supplier == nil {
		return defaultToleranceRate
	}
	unreliability := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(supplier.ReliabilityScore))
	return baseToleranceRate.Add(unreliability.Mul(reliabilitySlope))
}

// Reconcile runs the 3-way match of ordered, received and invoiced amounts. supplier is the
// supplier recognised in the purchase order reference, nil when none.
func Reconcile(req domain.ReconciliationRequest, supplier *domain.SupplierProfile) (domain.ReconciliationResult, error) {
	if !(req.OrderedAmount > 0) {
		return domain.ReconciliationResult{}, fmt.Errorf("ordered amount must be positive: %w", domain.ErrValidation)
	}
	if req.ReceivedAmount < 0 || req.InvoicedAmount < 0 {
		return domain.ReconciliationResult{}, fmt.Errorf("received and invoiced amounts must not be negative: %w", domain.ErrValidation)
	}

	ordered := decimal.NewFromFloat(req.OrderedAmount)
	received := decimal.NewFromFloat(req.ReceivedAmount)
	invoiced := decimal.NewFromFloat(req.InvoicedAmount)

	deviation := ordered.Sub(decimal.Max(received, invoiced)).Abs()
	tolerance := decimal.Max(ToleranceRate(supplier).Mul(ordered), minToleranceRate.Mul(ordered))
	priceMismatch := invoiced.Sub(received).Abs()

	surcharge := invoiced.Sub(received)
	freight := surcharge.IsPositive() && surcharge.LessThanOrEqual(freightRate.Mul(ordered))

	quantityOK := deviation.LessThanOrEqual(tolerance)
	priceOK := priceMismatch.LessThanOrEqual(priceMismatchRate.Mul(ordered))

	res := domain.ReconciliationResult{
		PurchaseOrderID:   req.PurchaseOrderID,
		AutoApproved:      quantityOK && (priceOK || freight),
		Deviation:         deviation.Round(2).InexactFloat64(),
		Tolerance:         tolerance.Round(2).InexactFloat64(),
		PriceMismatch:     priceMismatch.Round(2).InexactFloat64(),
		FreightAdjustment: freight,
	}

	switch {
	case res.AutoApproved && !priceOK:
		res.Message = "auto-approved with freight adjustment of " + surcharge.StringFixed(2)
	case res.AutoApproved:
		res.Message = "auto-approved"
	default:
		var reasons []string
		if !quantityOK {
			reasons = append(reasons, fmt.Sprintf("quantity deviation %s exceeds tolerance %s",
				deviation.StringFixed(2), tolerance.StringFixed(2)))
		}
		if !priceOK {
			reasons = append(reasons, fmt.Sprintf("price mismatch %s exceeds %s",
				priceMismatch.StringFixed(2), priceMismatchRate.Mul(ordered).StringFixed(2)))
		}
		res.Message = "manual review: " + strings.Join(reasons, "; ")
	}
	return res, nil
}
