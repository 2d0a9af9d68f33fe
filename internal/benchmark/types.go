package benchmark

// Point is the identity of one measurement: the parameter triple the
// workload inputs are regenerated with.
type Point struct {
	Users   int
	Items   int
	Queries int
}

// Record is the aggregate of all repeated trials at one Point.
type Record struct {
	Users         int     `json:"users"`
	Items         int     `json:"items"`
	Queries       int     `json:"queries"`
	AvgRuntimeSec float64 `json:"avg_runtime_sec"`
	PerQueryMs    float64 `json:"per_query_ms"`
	SweepLabel    string  `json:"sweep_label"`
}

// Metadata describes the run the records were measured under.
type Metadata struct {
	QueriesPerRun int  `json:"queries_per_run"`
	Repetitions   int  `json:"repetitions"`
	DryRun        bool `json:"dry_run"`
}

// ResultSet is the complete output of one benchmark run. It is built once
// and written to disk exactly once after both sweep passes finish.
type ResultSet struct {
	Metadata  Metadata `json:"metadata"`
	VaryItems []Record `json:"vary_items"`
	VaryUsers []Record `json:"vary_users"`
}
