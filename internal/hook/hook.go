package hook

// Chain composes hooks so that the first hook is the outermost wrapper.
// It returns nil if no hooks are given.
func Chain[T any](hooks ...func(next T) T) func(next T) T {
	hooks = compact(hooks)
	if len(hooks) == 0 {
		return nil
	}
	return func(next T) T {
		for i := len(hooks) - 1; i >= 0; i-- {
			next = hooks[i](next)
		}
		return next
	}
}

// Append places hooks after an existing (possibly nil) hook.
func Append[T any](existing func(next T) T, hooks ...func(next T) T) func(next T) T {
	return Chain(append([]func(next T) T{existing}, hooks...)...)
}

func compact[T any](hooks []func(next T) T) []func(next T) T {
	result := make([]func(next T) T, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			result = append(result, h)
		}
	}
	return result
}
