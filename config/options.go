package config

// Options configures the concrete collaborator implementations a cmd/purityflow-style driver
// wires up before running a purity.Pass; it has no effect on the analysis core itself, which only
// ever sees the collab interfaces.
type Options struct {
	MemoHelperNames        []string
	PrimitiveTypes         []string
	Intrinsics             map[string]bool
	ConstructorIntrinsics  map[string]bool
}

// Option mutates an Options value being built up by New.
type Option func(*Options)

// New builds an Options from zero or more Option values, applied in order.
func New(opts ...Option) *Options {
	o := &Options{}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithMemoHelperNames declares which call-site identifiers should be recognized as the project's
// memoization-cache idiom (package convention).
func WithMemoHelperNames(names ...string) Option {
	return func(o *Options) { o.MemoHelperNames = names }
}

// WithPrimitiveTypes declares which declared return-type names are provably disjoint from the
// root object type (package typeregistry). If never supplied, typeregistry.Default() should be
// used instead of an empty Registry.
func WithPrimitiveTypes(types ...string) Option {
	return func(o *Options) { o.PrimitiveTypes = types }
}

// WithIntrinsics declares the host runtime's intrinsic-purity table for ordinary calls (package
// nodeutil), keyed by dotted callee name ("Object.freeze").
func WithIntrinsics(table map[string]bool) Option {
	return func(o *Options) { o.Intrinsics = table }
}

// WithConstructorIntrinsics is WithIntrinsics for `new` expressions.
func WithConstructorIntrinsics(table map[string]bool) Option {
	return func(o *Options) { o.ConstructorIntrinsics = table }
}
