package domain

import "github.com/shopspring/decimal"

// CartLine is one drink in the cart with its own quantity and the price
// locked in when it was added. LineID is a stable identifier so mutations
// address lines by id rather than by slice position.
type CartLine struct {
	LineID   string          `json:"lineId"`
	DrinkID  string          `json:"idDrink"`
	Name     string          `json:"strDrink"`
	Thumb    string          `json:"strDrinkThumb,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity,omitempty"`
}

// Qty returns the effective quantity, treating an unset value as 1. Carts
// written before quantities existed omit the field.
func (l CartLine) Qty() int {
	if l.Quantity < 1 {
		return 1
	}
	return l.Quantity
}

// Cart is an ordered sequence of lines; insertion order is display order.
type Cart struct {
	Lines []CartLine
}

// Len reports the number of lines.
func (c Cart) Len() int {
	return len(c.Lines)
}

// Find returns the line with the given id and its position, or -1.
func (c Cart) Find(lineID string) (CartLine, int) {
	for i, l := range c.Lines {
		if l.LineID == lineID {
			return l, i
		}
	}
	return CartLine{}, -1
}
