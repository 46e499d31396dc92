package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPopulationSize is the number of genomes per generation, elite included
	GAPopulationSize = 3

	// GACrossOverRate is probability crossover fires instead of cloning both parents (0.0-1.0)
	GACrossOverRate = 0.0

	// GAMutationRate is probability each offspring receives one mutation (0.0-1.0)
	GAMutationRate = 1.0

	// GAParallelism is evaluation goroutines; 1 evaluates sequentially on one surface
	GAParallelism = 1

	// GAHistorySize is generations of statistics retained for stop predicates and display
	GAHistorySize = 256

	// GASelector names the default parent selection strategy
	GASelector = "rank"

	// GACombiner names the default recombination strategy
	GACombiner = "two-point"
)

// Genetic Algorithm - Genome Limits
const (
	// GAInitialPolygons is polygons per genome at initialization
	GAInitialPolygons = 50

	// GAMaxPolygons caps polygons per genome
	GAMaxPolygons = 500

	// GAMaxVertices caps vertices per polygon
	GAMaxVertices = 6

	// GAVertexCount is vertices of every randomly created polygon
	GAVertexCount = 3
)

// Genetic Algorithm - Snapshot Export
const (
	// GASnapshotDir is the directory for elite snapshot files
	GASnapshotDir = "./snapshots"

	// GASnapshotEvery exports the elite every N generations (0 disables periodic export)
	GASnapshotEvery = 500
)
