package journal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a quantity of a single commodity, carrying the display style it
// was written in and an optional conversion price.
type Amount struct {
	Quantity decimal.Decimal
	Style    Style

	// Price is the per-unit (or, with PriceIsTotal, total) cost attached
	// with @ (or @@). A price amount never carries a further nested price.
	Price        *Amount
	PriceIsTotal bool
}

// NewAmount creates an amount of the given quantity and style.
func NewAmount(quantity decimal.Decimal, style Style) Amount {
	return Amount{Quantity: quantity, Style: style}
}

// Negate returns the amount with its quantity sign flipped.
// The price, being a per-unit or total cost, is kept as written.
func (a Amount) Negate() Amount {
	a.Quantity = a.Quantity.Neg()
	return a
}

// IsZero reports whether the quantity is exactly zero, regardless of style.
func (a Amount) IsZero() bool {
	return a.Quantity.IsZero()
}

// String renders the amount in its own display style.
func (a Amount) String() string {
	var b strings.Builder
	quantity := a.Style.formatQuantity(a.Quantity.String())

	switch a.Style.Side {
	case SideRight:
		b.WriteString(quantity)
		if a.Style.Symbol != "" {
			if a.Style.Spaced {
				b.WriteByte(' ')
			}
			b.WriteString(a.Style.Symbol)
		}
	default:
		// A negative left-symbol amount reads as $-1.00.
		b.WriteString(a.Style.Symbol)
		if a.Style.Symbol != "" && a.Style.Spaced {
			b.WriteByte(' ')
		}
		b.WriteString(quantity)
	}

	if a.Price != nil {
		if a.PriceIsTotal {
			b.WriteString(" @@ ")
		} else {
			b.WriteString(" @ ")
		}
		b.WriteString(a.Price.String())
	}

	return b.String()
}

// MixedAmount is a multi-commodity total: an ordered collection of amounts,
// at most one per commodity symbol. The zero value is an empty, concrete
// amount; an elided amount awaiting inference is flagged out-of-band so no
// commodity symbol is reserved for it.
type MixedAmount struct {
	Amounts []Amount

	missing bool
}

// Mixed wraps amounts into a MixedAmount, combining duplicate commodities.
func Mixed(amounts ...Amount) MixedAmount {
	var m MixedAmount
	for _, a := range amounts {
		m = m.AddAmount(a)
	}
	return m
}

// MissingAmount returns the value of an amount the user elided, carrying no
// commodities, to be completed by the balancer.
func MissingAmount() MixedAmount {
	return MixedAmount{missing: true}
}

// IsMissing reports whether this amount was elided and awaits inference.
func (m MixedAmount) IsMissing() bool {
	return m.missing
}

// IsZero reports whether every per-commodity quantity is exactly zero.
// This is a numeric test; styles and precision play no part in it.
func (m MixedAmount) IsZero() bool {
	for _, a := range m.Amounts {
		if !a.IsZero() {
			return false
		}
	}
	return true
}

// AddAmount adds a single-commodity amount into the collection. Amounts are
// combined commodity-by-commodity; an absent commodity counts as zero.
// Prices are not combined: a priced amount contributes its primary commodity
// only, and the first Add drops the price (a sum has no single cost).
func (m MixedAmount) AddAmount(a Amount) MixedAmount {
	out := MixedAmount{Amounts: make([]Amount, len(m.Amounts))}
	copy(out.Amounts, m.Amounts)

	for i := range out.Amounts {
		if out.Amounts[i].Style.Symbol == a.Style.Symbol {
			sum := out.Amounts[i].Quantity.Add(a.Quantity)
			// Last-seen style wins within a sum too, so inferred
			// amounts print like the most recent literal.
			out.Amounts[i] = Amount{Quantity: sum, Style: a.Style}
			return out
		}
	}

	added := a
	added.Price = nil
	added.PriceIsTotal = false
	out.Amounts = append(out.Amounts, added)
	return out
}

// Add sums two mixed amounts commodity-by-commodity. A sum is always a
// concrete value, never a missing one.
func (m MixedAmount) Add(other MixedAmount) MixedAmount {
	out := m
	out.missing = false
	for _, a := range other.Amounts {
		out = out.AddAmount(a)
	}
	return out
}

// Negate flips the sign of every per-commodity quantity.
func (m MixedAmount) Negate() MixedAmount {
	out := MixedAmount{Amounts: make([]Amount, len(m.Amounts))}
	for i, a := range m.Amounts {
		out.Amounts[i] = a.Negate()
	}
	return out
}

// NonZero returns the amounts whose quantity is not exactly zero.
func (m MixedAmount) NonZero() []Amount {
	var out []Amount
	for _, a := range m.Amounts {
		if !a.IsZero() {
			out = append(out, a)
		}
	}
	return out
}

// Commodities returns the distinct commodity symbols present, in order.
func (m MixedAmount) Commodities() []string {
	out := make([]string, len(m.Amounts))
	for i, a := range m.Amounts {
		out[i] = a.Style.Symbol
	}
	return out
}

// String renders the per-commodity amounts separated by commas. An elided
// amount renders as the empty string.
func (m MixedAmount) String() string {
	parts := make([]string, len(m.Amounts))
	for i, a := range m.Amounts {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
