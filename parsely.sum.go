package parsely

// Sum parses one of the variants, tried in declaration order with
// backtracking. The first variant that succeeds wins, so a variant whose
// literal is a prefix of a later one shadows it when declared first.
func Sum[T any](name string, variants ...Parser[T]) Parser[T] {
	return Choice(name, variants...)
}

// UnitVariant matches literal and yields the payload-free variant v.
func UnitVariant[T any](literal string, v T) Parser[T] {
	return Unit(literal, v)
}

// PayloadVariant delegates to the payload parser and wraps the result in
// the variant.
func PayloadVariant[T, P any](payload Parser[P], wrap func(P) T) Parser[T] {
	return Map(payload, wrap)
}
