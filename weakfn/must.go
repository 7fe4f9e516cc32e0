package weakfn

// Must panics if err is not nil, and returns val otherwise.
// This is intended for wrapping constructors where the developer knows the arguments are valid.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
