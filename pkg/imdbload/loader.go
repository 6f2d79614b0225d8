package imdbload

import "context"

// Loader is the main interface for executing a full load run.
// Implementations handle the whole workflow: connection, schema
// initialization, optional truncation, and the three dataset loads.
type Loader interface {
	// Load executes a run using the provided configuration. It returns
	// the per-dataset results for every load that committed, in load
	// order, and an error if the run failed at any stage. Loads committed
	// before the failure stay committed and appear in the results.
	Load(ctx context.Context, config LoadConfig) ([]CopyResult, error)
}
