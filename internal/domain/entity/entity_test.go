package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

func TestUser_BiometricState(t *testing.T) {
	u := &entity.User{}
	assert.Equal(t, entity.BiometricUnenrolled, u.BiometricState())

	u.BioMetricAccess = true
	assert.Equal(t, entity.BiometricUnenrolled, u.BiometricState(), "sin enrolar el acceso no cuenta")

	u.IsBioMetricActive = true
	assert.Equal(t, entity.BiometricEnrolledActive, u.BiometricState())

	u.BioMetricAccess = false
	assert.Equal(t, entity.BiometricEnrolledBlocked, u.BiometricState())
}

func TestSubscription_IsCurrent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &entity.Subscription{DurationDays: 30, Status: entity.SubStatusPending}
	s.Activate(start)

	assert.Equal(t, start.AddDate(0, 0, 30), s.EndDate)
	assert.True(t, s.IsCurrent(start))
	assert.True(t, s.IsCurrent(start.AddDate(0, 0, 29)))
	assert.False(t, s.IsCurrent(start.AddDate(0, 0, 30)))
	assert.False(t, s.IsCurrent(start.Add(-time.Second)))

	s.Status = entity.SubStatusCancelled
	assert.False(t, s.IsCurrent(start))
}

func TestCoupon_Applicable(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	c := &entity.Coupon{IsActive: true, DiscountPercent: decimal.NewFromInt(10)}
	assert.True(t, c.Applicable(now))

	c.ExpiresAt = &past
	assert.False(t, c.Applicable(now))

	c.ExpiresAt = nil
	c.MaxUses, c.UsedCount = 2, 2
	assert.False(t, c.Applicable(now))

	c.UsedCount = 1
	c.IsActive = false
	assert.False(t, c.Applicable(now))
}

func TestCoupon_DiscountFor(t *testing.T) {
	c := &entity.Coupon{DiscountPercent: decimal.RequireFromString("15")}
	assert.True(t, decimal.RequireFromString("12.75").Equal(c.DiscountFor(decimal.NewFromInt(85))))

	c.DiscountPercent = decimal.NewFromInt(150)
	assert.True(t, decimal.NewFromInt(85).Equal(c.DiscountFor(decimal.NewFromInt(85))), "el descuento no supera el precio")
}

func TestFanOutResult_Succeeded(t *testing.T) {
	r := entity.FanOutResult{Results: []entity.DeviceOperationResult{{Success: true}, {Success: false}, {Success: true}}}
	assert.Equal(t, 2, r.Succeeded())
}
