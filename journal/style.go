package journal

import "strings"

// Side indicates on which side of the quantity a commodity symbol is written.
type Side int

const (
	// SideLeft places the symbol before the quantity ($1.00).
	SideLeft Side = iota
	// SideRight places the symbol after the quantity (1.00 EUR).
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Style describes how amounts of one commodity are written: symbol placement,
// spacing, decimal precision and thousands separation. The numeric value of an
// amount is independent of its style.
//
// The no-symbol commodity always reports side left and no spacing. This is a
// fixed default, preserved so existing journals render unchanged.
type Style struct {
	Symbol    string // Commodity symbol, empty for the no-symbol commodity
	Side      Side   // Symbol before or after the quantity
	Spaced    bool   // Space between symbol and quantity
	Precision int    // Digits right of the decimal point
	Thousands bool   // Comma-separate digit groups left of the point
}

// Styles collects the canonical display style per commodity symbol.
// When a symbol is seen more than once in a file (including included files,
// in document order), the last-seen style wins.
type Styles struct {
	bySymbol map[string]Style
	order    []string // First-seen order, for deterministic iteration
}

// NewStyles creates an empty style registry.
func NewStyles() *Styles {
	return &Styles{bySymbol: make(map[string]Style)}
}

// Record merges a newly observed style for its symbol into the registry and
// returns the now-canonical style. The incoming style always wins; recording
// only establishes first-seen order for iteration.
func (s *Styles) Record(style Style) Style {
	if _, seen := s.bySymbol[style.Symbol]; !seen {
		s.order = append(s.order, style.Symbol)
	}
	s.bySymbol[style.Symbol] = style
	return style
}

// Get returns the canonical style for a symbol.
func (s *Styles) Get(symbol string) (Style, bool) {
	style, ok := s.bySymbol[symbol]
	return style, ok
}

// Symbols returns all recorded symbols in first-seen order.
func (s *Styles) Symbols() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of distinct symbols recorded.
func (s *Styles) Len() int {
	return len(s.bySymbol)
}

// formatQuantity renders a plain decimal quantity string ("-1234.5") according
// to the style's precision and thousands separation.
func (st Style) formatQuantity(plain string) string {
	neg := strings.HasPrefix(plain, "-")
	if neg {
		plain = plain[1:]
	}

	intPart := plain
	fracPart := ""
	if i := strings.IndexByte(plain, '.'); i >= 0 {
		intPart, fracPart = plain[:i], plain[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	if len(fracPart) > st.Precision {
		fracPart = fracPart[:st.Precision]
	}
	for len(fracPart) < st.Precision {
		fracPart += "0"
	}

	if st.Thousands {
		intPart = groupThousands(intPart)
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if st.Precision > 0 {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// groupThousands inserts commas into a run of integer digits.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
