package eval

// map, foldl and foldr are provided as evaluator primitives rather than
// expressible purely via user-level pattern matching: the closed pattern
// grammar (§3.4) has no head/tail decomposition for the builtin list type,
// only fixed-arity bracket patterns, so a user-defined recursive walk over
// an arbitrary-length [a] cannot be written with `case`. Supplying these
// three as primitives (the same way `show` and `:` are primitives, not
// user-definable functions) lets a loaded file use them exactly as scenario
// 6 describes.

func mapOp(f, xs Value) (Value, error) {
	l, ok := xs.(*ListV)
	if !ok {
		return nil, typeMismatch("map")
	}
	out := make([]Value, len(l.Items))
	for i, it := range l.Items {
		v, err := apply(f, it)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return &ListV{Items: out}, nil
}

func foldlOp(f, acc, xs Value) (Value, error) {
	l, ok := xs.(*ListV)
	if !ok {
		return nil, typeMismatch("foldl")
	}
	cur := acc
	for _, it := range l.Items {
		step, err := apply(f, cur)
		if err != nil {
			return nil, err
		}
		cur, err = apply(step, it)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func foldrOp(f, acc, xs Value) (Value, error) {
	l, ok := xs.(*ListV)
	if !ok {
		return nil, typeMismatch("foldr")
	}
	cur := acc
	for i := len(l.Items) - 1; i >= 0; i-- {
		step, err := apply(f, l.Items[i])
		if err != nil {
			return nil, err
		}
		cur, err = apply(step, cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}
