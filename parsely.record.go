package parsely

// RecordConfig configures a record parser.
type RecordConfig struct {
	Affixes          // around the whole record
	Separator string // between consecutive fields, never after the last
}

// DefaultRecordConfig returns the default record configuration:
// no affixes, fields separated by a single space.
func DefaultRecordConfig() RecordConfig {
	return RecordConfig{Separator: DefaultSeparator}
}

// FieldSpec parses one field of T and stores it into the record.
type FieldSpec[T any] func(in Cursor, dst *T) (Cursor, *Failure)

// Field binds a field parser to a setter. The affixes are consumed around
// the field's value.
func Field[T, F any](set func(*T, F), p Parser[F], affixes Affixes) FieldSpec[T] {
	p = Affix(p, affixes)
	return func(in Cursor, dst *T) (Cursor, *Failure) {
		v, next, f := p(in)
		if f != nil {
			return in, f
		}
		set(dst, v)
		return next, nil
	}
}

// Record parses the fields of T in order:
//
//	[before] f1 sep f2 sep ... fn [after]
//
// Every step must succeed. A record with a single field parses exactly like
// that field (plus any affixes).
func Record[T any](cfg RecordConfig, fields ...FieldSpec[T]) Parser[T] {
	var sep Parser[string]
	if cfg.Separator != "" {
		sep = Literal(cfg.Separator)
	}
	body := func(in Cursor) (T, Cursor, *Failure) {
		var out, zero T
		cur := in
		for i, field := range fields {
			if i > 0 && sep != nil {
				_, next, f := sep(cur)
				if f != nil {
					return zero, in, f
				}
				cur = next
			}
			next, f := field(cur, &out)
			if f != nil {
				return zero, in, f
			}
			cur = next
		}
		return out, cur, nil
	}
	return Affix[T](body, cfg.Affixes)
}

// Unit parses the literal and yields v. It backs unit-like types and
// payload-free variants.
func Unit[T any](literal string, v T) Parser[T] {
	lit := Literal(literal)
	return func(in Cursor) (T, Cursor, *Failure) {
		_, next, f := lit(in)
		if f != nil {
			var zero T
			return zero, in, f
		}
		return v, next, nil
	}
}
