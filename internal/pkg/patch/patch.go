package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// CoalesceOptional keeps the current optional value unless the patch supplies one.
// An empty string in the patch clears the field.
func CoalesceOptional(ptr *string, current *string) *string {
	if ptr == nil {
		return current
	}
	if *ptr == "" {
		return nil
	}
	v := *ptr
	return &v
}

// CoalesceSlice replaces the whole slice when the patch carries one.
func CoalesceSlice[T any](patch *[]T, current []T) []T {
	if patch == nil {
		return current
	}
	out := make([]T, len(*patch))
	copy(out, *patch)
	return out
}
