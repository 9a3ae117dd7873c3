package result

import "time"

// Status is the categorical verdict for one probed (endpoint, IP) pair.
type Status string

const (
	StatusColo Status = "COLO"
	StatusSlow Status = "SLOW"
	StatusFail Status = "FAIL"
)

// Classify maps a probe outcome onto a Status. Total over all inputs.
// The threshold comparison is strict: a latency exactly at the threshold
// is SLOW, not COLO.
func Classify(success bool, latencyMs, threshold float64) Status {
	switch {
	case success && latencyMs < threshold:
		return StatusColo
	case success:
		return StatusSlow
	default:
		return StatusFail
	}
}

// ProbeOutcome is the raw timing of one TLS handshake attempt. LatencyMs
// is measured on the failure path too, up to the point the failure was
// detected.
type ProbeOutcome struct {
	IP        string
	LatencyMs float64
	Success   bool
}

// Result is one fully enriched measurement row. JSON field names match
// the report format consumed downstream.
type Result struct {
	Name      string  `json:"Constant"`
	Category  string  `json:"Category"`
	Domain    string  `json:"Domain"`
	IP        string  `json:"IP"`
	LatencyMs float64 `json:"Latency_ms"`
	Status    Status  `json:"Status"`
	AWSRegion string  `json:"AWS_Region"`
	Country   string  `json:"Country"`
	Region    string  `json:"Region"`
	City      string  `json:"City"`
}

// Summary is the colo count over the full result set.
type Summary struct {
	Colo  int
	Total int
}

// Percent returns the colo share in percent, 0 for an empty set.
func (s Summary) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Colo) / float64(s.Total) * 100
}

// Summarize counts COLO rows.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Status == StatusColo {
			s.Colo++
		}
	}
	return s
}

// Snapshot is one persisted run: the summary plus every row.
type Snapshot struct {
	ID        int64
	TakenAt   time.Time
	Threshold float64
	Colo      int
	Total     int
	Results   []Result
}
