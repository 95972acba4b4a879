// Package health provides the health checking primitives shared by the
// Phoenix services.
//
// A Checker reports the health of one dependency (database, prompt storage,
// process memory). An Aggregator fans out over the registered checkers and
// folds their results into an overall status, and the HTTP handlers expose
// the standard /healthz, /readyz, and /health endpoints every service
// mounts.
//
//	agg := health.NewAggregator()
//	agg.Register(health.NewDatabaseChecker("mysql", handle))
//	agg.Register(health.NewMemoryChecker(health.MemoryCheckerConfig{}))
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
package health
