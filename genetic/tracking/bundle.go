package tracking

// MetricBundle is a flat name → value view of one generation's statistics
type MetricBundle map[string]float64

// Standard metric keys
const (
	MetricGeneration   = "generation"
	MetricBestFitness  = "best_fitness"
	MetricWorstFitness = "worst_fitness"
	MetricMeanFitness  = "mean_fitness"
	MetricStdDev       = "fitness_stddev"
	MetricElite        = "elite_fitness"
	MetricMeanPolygons = "mean_polygons"
	MetricElitePolys   = "elite_polygons"
)

// Get returns metric value or default if not present
func (b MetricBundle) Get(key string, defaultVal float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return defaultVal
}

// Bundle flattens the stats for loggers and metric exporters
func (s Stats) Bundle() MetricBundle {
	return MetricBundle{
		MetricGeneration:   float64(s.Generation),
		MetricBestFitness:  s.Best,
		MetricWorstFitness: s.Worst,
		MetricMeanFitness:  s.Mean,
		MetricStdDev:       s.StdDev,
		MetricElite:        s.Elite,
		MetricMeanPolygons: s.MeanPolygons,
		MetricElitePolys:   float64(s.ElitePolygons),
	}
}
