package endpoint

// Record is one named endpoint taken from the endpoint-definition file.
// Immutable after parsing.
type Record struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Domain   string `json:"domain"`
}

// Target is the expansion of one endpoint against a single resolved
// IPv4 address. Built per run, consumed by the pipeline.
type Target struct {
	Endpoint Record
	IP       string
}
