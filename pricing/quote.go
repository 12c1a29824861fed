// Package pricing implements the repair quotation calculator and the
// board-diagram coordinate mapping used by the annotation editor.
//
// Everything here is pure: quotes are recomputed from the annotation
// lines for display and persisted as a snapshot when a repair is saved.
package pricing

// Construction materials (price column selectors)
const (
	Polyester = "polyester"
	Epoxy     = "epoxy"
)

// Discount modes
const (
	DiscountPercentage = "percentage"
	DiscountAmount     = "amount"
)

// Board sides
const (
	SideTop    = "top"
	SideBottom = "bottom"
)

// Line is one quotable annotation: a quantity of a repair type carrying
// both price columns, placed on one side of the board.
type Line struct {
	Side           string
	Quantity       int
	PricePolyester float64
	PriceEpoxy     float64
}

// UnitPrice returns the line price applicable to the given construction.
// Polyester is the fallback for unknown constructions.
func (l Line) UnitPrice(construction string) float64 {
	if construction == Epoxy {
		return l.PriceEpoxy
	}
	return l.PricePolyester
}

// Quote is a computed pricing snapshot.
type Quote struct {
	TopSubtotal    float64 `json:"topSubtotal"`
	BottomSubtotal float64 `json:"bottomSubtotal"`
	Subtotal       float64 `json:"subtotal"`
	DiscountType   string  `json:"discountType"`
	DiscountValue  float64 `json:"discountValue"`
	DiscountAmount float64 `json:"discountAmount"`
	Total          float64 `json:"total"`
}

// SideSubtotal sums unit price times quantity for the lines on one side.
func SideSubtotal(lines []Line, construction, side string) float64 {
	var subtotal float64
	for _, l := range lines {
		if l.Side != side {
			continue
		}
		subtotal += l.UnitPrice(construction) * float64(l.Quantity)
	}
	return subtotal
}

// Calculate derives the full quote from the annotation lines. The
// discount is a percentage of the subtotal or a flat amount depending on
// discountType. The total is not floored at zero: a discount exceeding
// the subtotal yields a negative total.
func Calculate(lines []Line, construction, discountType string, discountValue float64) Quote {
	top := SideSubtotal(lines, construction, SideTop)
	bottom := SideSubtotal(lines, construction, SideBottom)
	subtotal := top + bottom

	var discount float64
	switch discountType {
	case DiscountAmount:
		discount = discountValue
	default:
		discountType = DiscountPercentage
		discount = subtotal * discountValue / 100
	}

	return Quote{
		TopSubtotal:    top,
		BottomSubtotal: bottom,
		Subtotal:       subtotal,
		DiscountType:   discountType,
		DiscountValue:  discountValue,
		DiscountAmount: discount,
		Total:          subtotal - discount,
	}
}
