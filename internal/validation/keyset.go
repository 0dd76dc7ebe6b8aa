package validation

// KeySet is a set of normalized key strings (office codes, phone digits,
// terminal codes). A nil KeySet is valid and contains nothing; for
// foreign-key sets a nil KeySet additionally means "not supplied", which
// skips the membership check.
type KeySet map[string]struct{}

// NewKeySet returns a set holding the given keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Add inserts key. Adding to a nil set panics, like any nil map write.
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// Len returns the number of keys.
func (s KeySet) Len() int { return len(s) }
