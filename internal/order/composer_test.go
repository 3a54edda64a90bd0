package order

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/model"
)

var catalog = []string{"r0", "r1", "r2", "r3", "r4", "r5"}

func seq(vals ...float64) Rand {
	i := 0
	return func() float64 {
		v := vals[i%len(vals)]
		i++
		return v
	}
}

func TestDeliveryCharge(t *testing.T) {
	tests := []struct {
		r    float64
		want string
	}{
		{0, "1.00"},
		{0.5, "5.50"},
		{0.25, "3.25"},
		{0.999999, "10.00"},
		{0.0005, "1.00"},
		{0.125, "2.13"}, // 2.125 rounds away from zero
		{0.375, "4.38"},
		{0.123456, "2.11"},
	}

	for _, tt := range tests {
		got, err := DeliveryCharge(tt.r)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.StringFixed(2), "r=%v", tt.r)
	}
}

func TestDeliveryChargeBounds(t *testing.T) {
	lo, hi := decimal.NewFromInt(1), decimal.NewFromInt(10)
	for i := 0; i < 1000; i++ {
		c, err := DeliveryCharge(float64(i) / 1000)
		require.NoError(t, err)
		assert.True(t, c.GreaterThanOrEqual(lo) && c.LessThanOrEqual(hi), c.String())
		assert.True(t, c.Equal(c.Round(2)), c.String())
	}
}

func TestDeliveryChargeOutOfRange(t *testing.T) {
	for _, r := range []float64{-0.1, 1, 1.5} {
		_, err := DeliveryCharge(r)
		assert.ErrorIs(t, err, ErrRandOutOfRange)
	}
}

func TestPickRestaurant(t *testing.T) {
	got, err := PickRestaurant(catalog, 0)
	require.NoError(t, err)
	assert.Equal(t, "r0", got)

	got, err = PickRestaurant(catalog, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "r3", got)

	got, err = PickRestaurant(catalog, 0.9999)
	require.NoError(t, err)
	assert.Equal(t, "r5", got)

	_, err = PickRestaurant(nil, 0.5)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestCompose(t *testing.T) {
	basket := []model.BasketLine{
		{ID: "p1", Name: "Pizza", PricePerItem: decimal.RequireFromString("12.5"), Amount: 2},
	}

	req, err := Compose(basket, "cust-1", "Main St 1", catalog, seq(0.34, 0.5))
	require.NoError(t, err)

	assert.Equal(t, "cust-1", req.CustomerID)
	assert.Equal(t, "Main St 1", req.Address)
	assert.Equal(t, "r2", req.RestaurantID)
	assert.Equal(t, "5.50", req.DeliveryCharge.StringFixed(2))
	assert.Equal(t, basket, req.Items)

	basket[0].Amount = 9
	assert.Equal(t, 2, req.Items[0].Amount, "items must be a snapshot")
}

func TestComposeEmptyBasket(t *testing.T) {
	req, err := Compose(nil, "cust-1", "Main St 1", catalog, seq(0.1, 0.1))
	require.NoError(t, err)
	assert.NotNil(t, req.Items)
	assert.Empty(t, req.Items)
}

func TestComposeErrors(t *testing.T) {
	good := []model.BasketLine{{ID: "p1", PricePerItem: decimal.NewFromInt(1), Amount: 1}}

	_, err := Compose(good, "c", "a", nil, seq(0.1))
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = Compose(good, "c", "a", catalog, seq(0.1, 1.2))
	assert.ErrorIs(t, err, ErrRandOutOfRange)

	var verrs validator.ValidationErrors

	_, err = Compose(good, "", "a", catalog, seq(0.1))
	require.True(t, errors.As(err, &verrs))

	_, err = Compose(good, "c", "", catalog, seq(0.1))
	require.True(t, errors.As(err, &verrs))

	_, err = Compose([]model.BasketLine{{ID: "p1", Amount: 0}}, "c", "a", catalog, seq(0.1))
	require.True(t, errors.As(err, &verrs))

	_, err = Compose([]model.BasketLine{{ID: "p1", PricePerItem: decimal.NewFromInt(-1), Amount: 1}}, "c", "a", catalog, seq(0.1))
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestComposer(t *testing.T) {
	c := NewComposer([]string{"only"}, seq(0.7, 0))
	req, err := c.Compose([]model.BasketLine{}, "c", "a")
	require.NoError(t, err)
	assert.Equal(t, "only", req.RestaurantID)
	assert.Equal(t, "1.00", req.DeliveryCharge.StringFixed(2))
}
