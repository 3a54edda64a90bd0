// Package basket merges menu items into an ordered basket keyed by item id.
package basket

import (
	"github.com/shopspring/decimal"

	"fooddelivery/internal/model"
)

// Add returns a copy of b with item merged in. An existing line with the same
// id gets its amount incremented in place; otherwise a new line with amount 1
// is appended.
func Add(b []model.BasketLine, item model.MenuItem) []model.BasketLine {
	out := make([]model.BasketLine, len(b), len(b)+1)
	copy(out, b)

	for i := range out {
		if out[i].ID == item.ID {
			out[i].Amount++
			return out
		}
	}

	return append(out, model.BasketLine{
		ID:           item.ID,
		Name:         item.Name,
		PricePerItem: item.PricePerItem,
		Amount:       1,
	})
}

// Remove returns a copy of b without the line identified by id.
func Remove(b []model.BasketLine, id string) []model.BasketLine {
	out := make([]model.BasketLine, 0, len(b))
	for _, line := range b {
		if line.ID == id {
			continue
		}
		out = append(out, line)
	}
	return out
}

func Total(b []model.BasketLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range b {
		total = total.Add(line.PricePerItem.Mul(decimal.NewFromInt(int64(line.Amount))))
	}
	return total
}

func Count(b []model.BasketLine) int {
	n := 0
	for _, line := range b {
		n += line.Amount
	}
	return n
}
