package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Compressed       int
	Skipped          int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// SavingsPercent returns the aggregate savings relative to the input bytes,
// or 0 when nothing was measured.
func (s *RunStats) SavingsPercent() float64 {
	if s.TotalInputBytes <= 0 {
		return 0
	}
	return float64(s.SpaceSaved()) / float64(s.TotalInputBytes) * 100
}
