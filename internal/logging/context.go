package logging

import "context"

type fieldsKey struct{}

// ContextWith returns a copy of ctx carrying extra key/value pairs. Every
// Logger call made with the returned context includes them, ahead of the
// call's own args.
func ContextWith(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	prev := FieldsFrom(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// FieldsFrom returns the pairs stored by ContextWith, or nil.
func FieldsFrom(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(fieldsKey{}).([]any)
	return f
}

func withContextFields(ctx context.Context, args []any) []any {
	f := FieldsFrom(ctx)
	if len(f) == 0 {
		return args
	}
	out := make([]any, 0, len(f)+len(args))
	out = append(out, f...)
	return append(out, args...)
}
