// Package api defines the external representation of symptoms and metrics
// and the pure conversions between wire and domain forms. Timestamps cross
// the wire as RFC3339 strings with explicit offset; outgoing values are
// normalized to the canonical UTC form, so a second round-trip is
// byte-identical.
package api

// Symptom is the wire form of a symptom. PublishedAt never leaves the
// server; clients track their position with the pull cursor instead.
type Symptom struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	OtherNames []string `json:"otherNames"`
	UpdatedAt  string   `json:"updatedAt"`
}

// Metric is the wire form of a metric.
type Metric struct {
	ID        string `json:"id"`
	SymptomID string `json:"symptomId"`
	Date      string `json:"date"`
	UpdatedAt string `json:"updatedAt"`
	Intensity string `json:"intensity"`
	Notes     string `json:"notes"`
}

// ChangeSet carries both collections of one pull response or push request.
type ChangeSet struct {
	Symptoms []Symptom `json:"symptoms"`
	Metrics  []Metric  `json:"metrics"`
}

// PushOutcome lists, in input order, the ids a push accepted and rejected.
// Every pushed id appears in exactly one of the two lists.
type PushOutcome struct {
	Successful []string `json:"successful"`
	Failed     []string `json:"failed"`
}

// PushResult is the per-kind outcome accounting of one push batch.
type PushResult struct {
	Symptoms PushOutcome `json:"symptoms"`
	Metrics  PushOutcome `json:"metrics"`
}
