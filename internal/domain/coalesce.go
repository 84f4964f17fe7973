package domain

// Coalesce returns the first non-zero value, or the zero value.
func Coalesce[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// patched is the value a patch field leaves behind: *p when set, else cur.
func patched[T any](cur T, p *T) T {
	if p == nil {
		return cur
	}
	return *p
}
