package pipeline

import (
	"context"
	"log/slog"

	"github.com/fogfish/opts"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	relay "github.com/casualjim/relay"
	"github.com/casualjim/relay/feature"
	"github.com/casualjim/relay/pkg/stdx"
	"github.com/casualjim/relay/pkg/syncx"
)

// Pipeline is the central event-dispatch object. One instance may be shared
// by many concurrent agent runs; all shared state lives behind its
// read-write lock.
type Pipeline struct {
	features     *feature.Storage
	lock         *syncx.ReentrantRWLock
	nodeTable    *orderedmap.OrderedMap[string, *nodeHandlers]
	agentTable   *orderedmap.OrderedMap[string, *agentHandlers]
	transformers *orderedmap.OrderedMap[string, relay.Transformer]
	log          *slog.Logger
}

// Option configures a Pipeline during construction.
type Option = opts.Option[Pipeline]

// WithLogger sets the logger install/uninstall activity is reported on.
func WithLogger(log *slog.Logger) Option {
	return opts.Type[Pipeline](func(p *Pipeline) error {
		p.log = log
		return nil
	})
}

// New returns an empty pipeline. It panics if an option fails to apply,
// which only happens on programmer error.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		features:     feature.NewStorage(),
		lock:         syncx.NewReentrantRWLock(),
		nodeTable:    orderedmap.New[string, *nodeHandlers](),
		agentTable:   orderedmap.New[string, *agentHandlers](),
		transformers: orderedmap.New[string, relay.Transformer](),
		log:          slog.Default(),
	}
	stdx.Must0(opts.Apply(p, options))
	return p
}

// Feature is a pluggable cross-cutting module. Install receives a fresh
// default configuration, possibly amended by the caller, and registers the
// feature's handlers on the pipeline. The returned implementation is what
// later Resolve calls yield.
type Feature[C, T any] interface {
	// Key names the feature kind and pins the implementation type.
	Key() feature.Key[T]
	// DefaultConfig returns a fresh configuration with defaults applied.
	DefaultConfig() *C
	// Install wires the feature into the pipeline and returns its
	// implementation instance.
	Install(ctx context.Context, config *C, p *Pipeline) (T, error)
}

// Install installs f into p, letting configure mutate a fresh default
// configuration first. Installing under an already-used key silently
// replaces the previous entry; the replaced feature's handlers go dead
// through the liveness check in their wrappers.
func Install[C, T any](ctx context.Context, p *Pipeline, f Feature[C, T], configure func(*C)) (T, error) {
	cfg := f.DefaultConfig()
	if configure != nil {
		configure(cfg)
	}

	var impl T
	err := p.lock.WithWriteLock(ctx, func(ctx context.Context) error {
		var err error
		impl, err = f.Install(ctx, cfg, p)
		if err != nil {
			return err
		}
		feature.Install(p.features, f.Key(), cfg, impl)
		return nil
	})
	if err != nil {
		return stdx.Zero[T](), err
	}

	p.log.DebugContext(ctx, "feature installed", slog.String("feature", f.Key().Name()))
	return impl, nil
}

// Uninstall removes the feature installed under name, draining and closing
// its implementation when it exposes cleanup hooks. The feature's handlers
// stay in the tables but never fire again: their wrappers notice the
// registry no longer maps the key to their instance. Unknown names are a
// no-op.
//
// Because table records are never removed, a pipeline that installs and
// uninstalls many distinct feature names over its lifetime retains one dead
// record per name. Reuse feature names when cycling features on a
// long-lived pipeline.
func (p *Pipeline) Uninstall(ctx context.Context, name string) error {
	err := p.lock.WithWriteLock(ctx, func(ctx context.Context) error {
		p.transformers.Delete(name)
		return p.features.Uninstall(ctx, name)
	})
	if err != nil {
		return err
	}

	p.log.DebugContext(ctx, "feature uninstalled", slog.String("feature", name))
	return nil
}

// ResolveFeature returns the implementation installed under key, enabling
// feature-to-feature composition. It is safe to call from inside a handler:
// the read lock re-enters. Absence is reported through the boolean, a key
// reused for an incompatible type through the error.
func ResolveFeature[T any](ctx context.Context, p *Pipeline, key feature.Key[T]) (T, bool, error) {
	var (
		impl T
		ok   bool
	)
	err := p.lock.WithReadLock(ctx, func(context.Context) error {
		var err error
		impl, ok, err = feature.Resolve(p.features, key)
		return err
	})
	return impl, ok, err
}

// Close uninstalls every feature, draining and closing their resources.
// Call it after the last run has finished.
func (p *Pipeline) Close(ctx context.Context) error {
	return p.lock.WithWriteLock(ctx, func(ctx context.Context) error {
		return p.features.Close(ctx)
	})
}
