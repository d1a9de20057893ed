// Package executor runs per-cluster tasks with bounded concurrency.
//
// A pool is filled with one task per Harvester cluster and executed once.
// Results come back in submission order; a failing task is recorded in its
// result and never stops the others:
//
//	pool := executor.NewPool(cfg.Defaults.Parallel, logger)
//	for _, rec := range records {
//	    c := session.Cluster(rec)
//	    pool.Submit(executor.Task{
//	        ClusterName: rec.Name,
//	        Execute: func(ctx context.Context) (any, error) {
//	            return c.PackageDetails(ctx)
//	        },
//	    })
//	}
//	results := pool.Execute(ctx)
//	if err := executor.Err(results); err != nil {
//	    ...
//	}
//
// Tasks that have not started when the context is cancelled are reported
// with an error wrapping the context error.
package executor
