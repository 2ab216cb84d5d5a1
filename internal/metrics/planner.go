package metrics

import "context"

// PlannerCounter adapts a MetricsCollector into the simple
// func(ctx, name) counter callback the planning engine threads through its
// provider and task layers.
func PlannerCounter(mc *MetricsCollector) func(ctx context.Context, name string) {
	return func(ctx context.Context, name string) {
		mc.IncrementCounter(name, 1)
	}
}
