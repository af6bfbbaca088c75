// Package eventhandler provides the simplest possible pipeline feature: a
// bag of optional per-event callbacks supplied through its configuration.
//
// Install it when an application wants to react to a handful of lifecycle
// events without writing a feature of its own:
//
//	_, err := pipeline.Install(ctx, p, eventhandler.Feature{}, func(c *eventhandler.Config) {
//	    c.OnToolCallStarting = func(ctx context.Context, ev events.ToolCallStarting) error {
//	        audit.Record(ev.Tool, ev.Arguments)
//	        return nil
//	    }
//	})
//
// Only configured callbacks are registered; every other event type stays
// untouched for this feature.
package eventhandler
