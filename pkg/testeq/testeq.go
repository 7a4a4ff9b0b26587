// Package testeq reports differences between expected and actual
// ordered sequences one mismatch at a time.
package testeq

import "fmt"

// Writer is implemented by *testing.T.
type Writer interface {
	Helper()
	Errorf(fmt string, v ...any)
}

// Equal is a check function for comparable types.
func Equal[T comparable](expected, actual T) (errMsg string) {
	if expected != actual {
		return fmt.Sprintf("expected %v, got %v", expected, actual)
	}
	return ""
}

// Slices reports every index at which expect and actual differ
// as well as missing and unexpected trailing items.
func Slices[T any](
	writer Writer,
	title string,
	expect, actual []T,
	check func(expected, actual T) (errMsg string),
	stringify func(T) string,
) (ok bool) {
	writer.Helper()
	ok = true

	for i, a := range actual {
		if i >= len(expect) {
			break
		}
		if errMsg := check(expect[i], a); errMsg != "" {
			writer.Errorf(
				"mismatching %s at index %d: %s",
				title, i, errMsg,
			)
			ok = false
		}
	}
	if d := len(actual) - len(expect); d > 0 {
		for i, a := range actual[len(expect):] {
			writer.Errorf(
				"unexpected %s at index %d (%s)",
				title, len(expect)+i, stringify(a),
			)
		}
		ok = false
	} else if d < 0 {
		for i, e := range expect[len(actual):] {
			writer.Errorf(
				"missing %s at index %d (%s)",
				title, len(actual)+i, stringify(e),
			)
		}
		ok = false
	}
	return ok
}

// Entries compares the ordered entries produced by visit
// against expected keys and values.
func Entries[K comparable, V comparable](
	writer Writer,
	keys []K,
	values []V,
	visit func(fn func(K, V) (stop bool)),
) (ok bool) {
	writer.Helper()
	var actualKeys []K
	var actualValues []V
	visit(func(k K, v V) bool {
		actualKeys = append(actualKeys, k)
		actualValues = append(actualValues, v)
		return false
	})
	s := func(x any) string { return fmt.Sprintf("%v", x) }
	okKeys := Slices(writer, "key", keys, actualKeys, Equal[K],
		func(k K) string { return s(k) })
	okValues := Slices(writer, "value", values, actualValues, Equal[V],
		func(v V) string { return s(v) })
	return okKeys && okValues
}
