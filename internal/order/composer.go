// Package order builds order requests out of a basket snapshot.
package order

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"fooddelivery/internal/model"
)

var (
	ErrEmptyCatalog   = errors.New("restaurant catalog is empty")
	ErrRandOutOfRange = errors.New("random value out of [0,1)")
	ErrNegativePrice  = errors.New("negative item price")
)

const (
	minCharge  = 1.0
	chargeSpan = 9.0
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Rand returns a uniformly distributed value in [0,1).
type Rand func() float64

func checkRand(r float64) error {
	if r < 0 || r >= 1 || math.IsNaN(r) {
		return fmt.Errorf("%w: %v", ErrRandOutOfRange, r)
	}
	return nil
}

// PickRestaurant returns catalog[floor(r*len(catalog))].
func PickRestaurant(catalog []string, r float64) (string, error) {
	if len(catalog) == 0 {
		return "", ErrEmptyCatalog
	}
	if err := checkRand(r); err != nil {
		return "", err
	}
	return catalog[int(math.Floor(r*float64(len(catalog))))], nil
}

// DeliveryCharge maps r onto [1.00, 10.00], rounded half away from zero to
// two decimal places.
func DeliveryCharge(r float64) (decimal.Decimal, error) {
	if err := checkRand(r); err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(minCharge + chargeSpan*r).Round(2), nil
}

// Compose draws the restaurant first and the delivery charge second.
func Compose(basket []model.BasketLine, customerID, address string, catalog []string, rng Rand) (model.OrderRequest, error) {
	if rng == nil {
		rng = rand.Float64
	}

	restaurant, err := PickRestaurant(catalog, rng())
	if err != nil {
		return model.OrderRequest{}, fmt.Errorf("pick restaurant: %w", err)
	}

	charge, err := DeliveryCharge(rng())
	if err != nil {
		return model.OrderRequest{}, fmt.Errorf("delivery charge: %w", err)
	}

	items := make([]model.BasketLine, len(basket))
	copy(items, basket)

	req := model.OrderRequest{
		CustomerID:     customerID,
		Address:        address,
		Items:          items,
		RestaurantID:   restaurant,
		DeliveryCharge: charge,
	}

	if err := validate.Struct(req); err != nil {
		return model.OrderRequest{}, fmt.Errorf("validate order: %w", err)
	}
	for _, line := range items {
		if line.PricePerItem.IsNegative() {
			return model.OrderRequest{}, fmt.Errorf("item %s: %w", line.ID, ErrNegativePrice)
		}
	}

	return req, nil
}

// Composer binds a restaurant catalog and a random source.
type Composer struct {
	catalog []string
	rng     Rand
}

func NewComposer(catalog []string, rng Rand) *Composer {
	if rng == nil {
		rng = rand.Float64
	}
	return &Composer{catalog: catalog, rng: rng}
}

func (c *Composer) Compose(basket []model.BasketLine, customerID, address string) (model.OrderRequest, error) {
	return Compose(basket, customerID, address, c.catalog, c.rng)
}
