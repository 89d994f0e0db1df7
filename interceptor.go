package enumprops

// ResolveFunc resolves a value to a member. It is passed to
// [ResolveInterceptor] functions to invoke the next interceptor or the
// built-in resolution.
type ResolveFunc func(value any) (*Member, error)

// ResolveInterceptor is a hook that wraps Enum.Resolve.
//
//	func traceResolve(e *enumprops.Enum, value any, next enumprops.ResolveFunc) (*enumprops.Member, error) {
//	    m, err := next(value)
//	    log.Printf("%s: %v -> %v (%v)", e.Name(), value, m, err)
//	    return m, err
//	}
//
// The next parameter is the next resolver in the chain. Interceptors can:
//   - Rewrite the value before calling next
//   - Replace the result or the error after calling next
//   - Short-circuit by returning a member or error without calling next
type ResolveInterceptor func(e *Enum, value any, next ResolveFunc) (*Member, error)

// chainInterceptors wraps final with the interceptors.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(e *Enum, interceptors []ResolveInterceptor, final ResolveFunc) ResolveFunc {
	chain := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		current := interceptors[i]
		if current == nil {
			continue
		}
		next := chain
		chain = func(value any) (*Member, error) {
			return current(e, value, next)
		}
	}
	return chain
}
