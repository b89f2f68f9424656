package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

func TestGenerateReceipt_ProducePDF(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	sub := &entity.Subscription{
		ID: "5f1c2a9e-0000-4000-8000-000000000001", UserID: 1, PlanName: "Mensual", DurationDays: 30,
		Price: decimal.NewFromInt(120000), Discount: decimal.NewFromInt(12000), Total: decimal.NewFromInt(108000),
		CouponCode: "AMIGO", PaymentMethod: entity.PaymentCash, Status: entity.SubStatusActive,
		StartDate: start, EndDate: start.AddDate(0, 0, 30), CreatedAt: start,
	}
	user := &entity.User{ID: 1, Name: "Ana Pérez", Email: "ana@example.com"}

	pdf, err := NewMarotoReceiptGenerator().GenerateReceipt(context.Background(), sub, user, "")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0", money(decimal.Zero))
	assert.Equal(t, "$950", money(decimal.NewFromInt(950)))
	assert.Equal(t, "$25.000", money(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.000.000", money(decimal.NewFromInt(1000000)))
}

func TestReceiptNumber(t *testing.T) {
	assert.Equal(t, "N° 5F1C2A9E", receiptNumber("5f1c2a9e-0000-4000-8000-000000000001"))
	assert.Equal(t, "N° AB", receiptNumber("ab"))
}
