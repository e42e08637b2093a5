package parser

// Interner maintains a pool of canonical strings. Account names and commodity
// symbols repeat heavily throughout a journal, and with includes the same
// names recur across files; reusing one string instance per distinct value
// keeps the assembled journal compact.
type Interner struct {
	pool map[string]string
}

// NewInterner creates an interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{pool: make(map[string]string, capacity)}
}

// Intern returns the canonical instance of s, registering it if new.
func (i *Interner) Intern(s string) string {
	if canonical, ok := i.pool[s]; ok {
		return canonical
	}
	i.pool[s] = s
	return s
}

// Size returns the number of distinct strings in the pool.
func (i *Interner) Size() int {
	return len(i.pool)
}
