package health_test

import (
	"context"
	"fmt"

	"github.com/phoenix-platform/phoenixlib/health"
)

func ExampleAggregator() {
	agg := health.NewAggregator()
	agg.Register(health.NewChecker("prompt-store", func(ctx context.Context) health.Result {
		return health.Healthy("templates readable")
	}))
	agg.Register(health.NewChecker("queue", func(ctx context.Context) health.Result {
		return health.Degraded("backlog growing")
	}))

	results := agg.CheckAll(context.Background())
	fmt.Println(agg.OverallStatus(results))
	// Output: degraded
}
