package eval

// InitialEnv builds the standard value environment: one PrimV per operator
// name the matching scheme in infer.InitialEnv describes, so a program's
// name resolution is identical across the two phases.
func InitialEnv() *Env {
	env := NewEnv()
	env = env.Extend("+", prim2("+", addOp))
	env = env.Extend("-", prim2("-", subOp))
	env = env.Extend("*", prim2("*", mulOp))
	env = env.Extend("/", prim2("/", divOp))
	env = env.Extend("^", prim2("^", powOp))
	env = env.Extend("**", prim2("**", powfOp))
	env = env.Extend("div", prim2("div", divIntOp))
	env = env.Extend("mod", prim2("mod", modIntOp))
	env = env.Extend("quot", prim2("quot", quotIntOp))
	env = env.Extend("rem", prim2("rem", remIntOp))
	env = env.Extend("==", prim2("==", eqOp))
	env = env.Extend("/=", prim2("/=", neOp))
	env = env.Extend("<", prim2("<", ltOp))
	env = env.Extend("<=", prim2("<=", leOp))
	env = env.Extend(">", prim2(">", gtOp))
	env = env.Extend(">=", prim2(">=", geOp))
	env = env.Extend("&&", prim2("&&", andOp))
	env = env.Extend("||", prim2("||", orOp))
	env = env.Extend(":", prim2(":", consOp))
	env = env.Extend("show", prim1("show", func(v Value) (Value, error) {
		s, err := showValue(v)
		if err != nil {
			return nil, err
		}
		return &StringV{Value: s}, nil
	}))
	env = env.Extend("map", prim2("map", mapOp))
	env = env.Extend("foldl", prim3("foldl", foldlOp))
	env = env.Extend("foldr", prim3("foldr", foldrOp))
	return env
}
