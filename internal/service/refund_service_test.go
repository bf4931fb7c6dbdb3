package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savings-finder/internal/models"
	"savings-finder/internal/service"
)

func strPtr(s string) *string { return &s }

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var today = time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

func paperTowelCoupon() models.Coupon {
	return models.Coupon{
		ProductID:     "345678",
		ProductName:   "Kirkland Paper Towels",
		DiscountPrice: 19.99,
		Province:      "ON",
		ValidUntil:    "2024-12-25",
	}
}

func paperTowelReceipt() models.Receipt {
	return models.Receipt{
		ReceiptID:   "r-001",
		ReceiptDate: "2024-11-20",
		Province:    "ON",
		Items: []models.ReceiptItem{
			{ProductID: nil, ProductName: "Kirkland Paper Towels", PricePaid: 24.99},
		},
	}
}

func TestCalculateRefundsForReceipt(t *testing.T) {
	svc := service.NewRefundService(fixedNow(today))

	t.Run("end to end name match", func(t *testing.T) {
		got := svc.CalculateRefundsForReceipt(paperTowelReceipt(), []models.Coupon{paperTowelCoupon()}, service.DefaultCalculationOptions())

		require.Len(t, got, 1)
		assert.InDelta(t, 5.00, got[0].Result.RefundAmount, 1e-9)
		assert.Equal(t, models.MatchTypeName, got[0].Result.MatchType)
		assert.Equal(t, models.ClassificationActive, got[0].Classification)
	})

	t.Run("other province coupons are ignored", func(t *testing.T) {
		coupon := paperTowelCoupon()
		coupon.Province = "BC"

		got := svc.CalculateRefundsForReceipt(paperTowelReceipt(), []models.Coupon{coupon}, service.DefaultCalculationOptions())

		assert.Empty(t, got)
	})

	t.Run("valid_after drops earlier expiries", func(t *testing.T) {
		opts := service.DefaultCalculationOptions()
		opts.ValidAfter = "2024-12-26"

		got := svc.CalculateRefundsForReceipt(paperTowelReceipt(), []models.Coupon{paperTowelCoupon()}, opts)

		assert.Empty(t, got)
	})

	t.Run("minimum refund amount gate", func(t *testing.T) {
		opts := service.DefaultCalculationOptions()
		opts.MinimumRefundAmount = 5.01

		got := svc.CalculateRefundsForReceipt(paperTowelReceipt(), []models.Coupon{paperTowelCoupon()}, opts)

		assert.Empty(t, got)
	})

	t.Run("expired opportunities dropped when excluded", func(t *testing.T) {
		coupon := paperTowelCoupon()
		coupon.ValidUntil = "2024-11-30"
		opts := service.DefaultCalculationOptions()
		opts.IncludeExpired = false

		got := svc.CalculateRefundsForReceipt(paperTowelReceipt(), []models.Coupon{coupon}, opts)

		assert.Empty(t, got)
	})

	t.Run("expired opportunities kept by default", func(t *testing.T) {
		coupon := paperTowelCoupon()
		coupon.ValidUntil = "2024-11-30"

		got := svc.CalculateRefundsForReceipt(paperTowelReceipt(), []models.Coupon{coupon}, service.DefaultCalculationOptions())

		require.Len(t, got, 1)
		assert.Equal(t, models.ClassificationExpired, got[0].Classification)
	})
}

func TestCalculateRefundsForReceipts(t *testing.T) {
	svc := service.NewRefundService(fixedNow(today))

	first := paperTowelReceipt()
	second := paperTowelReceipt()
	second.ReceiptID = "r-002"

	// the same coupon legitimately applies to the same product on both
	// receipts; nothing is deduplicated
	got := svc.CalculateRefundsForReceipts([]models.Receipt{first, second}, []models.Coupon{paperTowelCoupon()}, service.DefaultCalculationOptions())

	assert.Len(t, got, 2)
}

func TestActiveAndExpiredRefunds(t *testing.T) {
	svc := service.NewRefundService(fixedNow(today))

	activeCoupon := paperTowelCoupon()
	expiredCoupon := models.Coupon{
		ProductID:     "789012",
		ProductName:   "Kirkland Coffee Beans",
		DiscountPrice: 12.99,
		Province:      "ON",
		ValidUntil:    "2024-11-30",
	}
	receipt := paperTowelReceipt()
	receipt.Items = append(receipt.Items, models.ReceiptItem{
		ProductID: strPtr("789012"), ProductName: "Kirkland Coffee Beans", PricePaid: 15.99,
	})
	receipts := []models.Receipt{receipt}
	coupons := []models.Coupon{activeCoupon, expiredCoupon}

	active := svc.ActiveRefunds(receipts, coupons, service.DefaultCalculationOptions())
	require.Len(t, active, 1)
	assert.Equal(t, models.ClassificationActive, active[0].Classification)

	expired := svc.ExpiredRefunds(receipts, coupons, service.DefaultCalculationOptions())
	require.Len(t, expired, 1)
	assert.Equal(t, "789012", expired[0].Result.ProductID)

	// forcing IncludeExpired off upstream cannot hide expired results here
	opts := service.DefaultCalculationOptions()
	opts.IncludeExpired = false
	expired = svc.ExpiredRefunds(receipts, coupons, opts)
	assert.Len(t, expired, 1)

	gotActive, gotExpired := svc.SeparatedRefunds(receipts, coupons, service.DefaultCalculationOptions())
	assert.Len(t, gotActive, 1)
	assert.Len(t, gotExpired, 1)
}

func TestReceiptsInWindow(t *testing.T) {
	svc := service.NewRefundService(fixedNow(today))

	inWindow := paperTowelReceipt()
	inWindow.ReceiptDate = "2024-11-20" // 11 days ago

	onBoundary := paperTowelReceipt()
	onBoundary.ReceiptID = "r-002"
	onBoundary.ReceiptDate = "2024-11-01" // exactly 30 days ago, inclusive

	tooOld := paperTowelReceipt()
	tooOld.ReceiptID = "r-003"
	tooOld.ReceiptDate = "2024-10-17" // 45 days ago

	unparseable := paperTowelReceipt()
	unparseable.ReceiptID = "r-004"
	unparseable.ReceiptDate = "not a date"

	got := svc.ReceiptsInWindow([]models.Receipt{inWindow, onBoundary, tooOld, unparseable}, 30)

	require.Len(t, got, 2)
	assert.Equal(t, "r-001", got[0].ReceiptID)
	assert.Equal(t, "r-002", got[1].ReceiptID)
}

func TestPriceAdjustmentRefunds(t *testing.T) {
	svc := service.NewRefundService(fixedNow(today))

	stale := paperTowelReceipt()
	stale.ReceiptDate = "2024-10-17" // 45 days before today

	got := svc.PriceAdjustmentRefunds([]models.Receipt{stale}, []models.Coupon{paperTowelCoupon()}, 30, service.DefaultCalculationOptions())

	assert.Empty(t, got) // excluded silently, no error

	fresh := paperTowelReceipt()
	got = svc.PriceAdjustmentRefunds([]models.Receipt{fresh}, []models.Coupon{paperTowelCoupon()}, 30, service.DefaultCalculationOptions())

	require.Len(t, got, 1)
	assert.InDelta(t, 5.00, got[0].Result.RefundAmount, 1e-9)
}
