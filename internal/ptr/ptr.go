package ptr

// Ref returns a pointer to v. Handy for literal values in struct fields
// where nil means "unset", like undetermined set weights.
func Ref[T any](v T) *T {
	return &v
}
