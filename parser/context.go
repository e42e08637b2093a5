package parser

import (
	"strings"

	"github.com/colindean/hledger/journal"
)

// Context is the ephemeral parse-time state that directives mutate and later
// lines depend on: the default year for partial dates, the default commodity
// from the D directive (reserved), and the stack of open !account parents.
//
// A Context belongs to a single parse pass; there is no global parser state.
// Included files receive a snapshot, so their mutations do not leak back to
// the includer. The commodity style registry is the one exception: style
// inference is document-order-global, so the registry pointer is shared.
type Context struct {
	// Year is the default year for partial M/D dates; zero means unset.
	Year int

	// DefaultCommoditySymbol records the D directive's commodity. The
	// reference grammar reserves it without consuming it; so do we.
	DefaultCommoditySymbol string

	// parents holds open !account prefixes, each stored with a trailing
	// separator so it can be prepended to nested names directly.
	parents []string

	// Styles is shared across the whole parse, includes included files.
	Styles *journal.Styles
}

func newContext() *Context {
	return &Context{Styles: journal.NewStyles()}
}

// snapshot copies the context for an included file. The style registry is
// shared; everything else is independent from here on.
func (c *Context) snapshot() *Context {
	parents := make([]string, len(c.parents))
	copy(parents, c.parents)
	return &Context{
		Year:                   c.Year,
		DefaultCommoditySymbol: c.DefaultCommoditySymbol,
		parents:                parents,
		Styles:                 c.Styles,
	}
}

// pushAccount opens an !account block.
func (c *Context) pushAccount(name string) {
	c.parents = append(c.parents, name+accountSeparator)
}

// popAccount closes the innermost !account block, reporting whether one was
// open.
func (c *Context) popAccount() bool {
	if len(c.parents) == 0 {
		return false
	}
	c.parents = c.parents[:len(c.parents)-1]
	return true
}

// accountPrefix is the concatenation of all open !account parents.
func (c *Context) accountPrefix() string {
	return strings.Join(c.parents, "")
}
