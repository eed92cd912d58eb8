package orchestrator

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Duration bounds, in minutes of reading or listening time.
const (
	MinDuration     = 2
	MaxDuration     = 5
	DefaultDuration = 3
)

// Classification is the classifier's three-way verdict.
type Classification string

const (
	ClassificationPlacementTopic Classification = "placement_topic"
	ClassificationIrrelevant     Classification = "irrelevant"
	ClassificationHarmful        Classification = "harmful"
)

// Valid reports whether c is one of the three known classifications.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationPlacementTopic, ClassificationIrrelevant, ClassificationHarmful:
		return true
	}
	return false
}

// StageFailure is one absorbed failure recorded on the side-channel error list.
type StageFailure struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// PipelineState is the record threaded through one invocation. It is owned by
// exactly one in-flight invocation and filled in monotonically: each field is
// written by a single stage and never cleared afterwards. Empty strings mean
// "absent" and are omitted from JSON.
type PipelineState struct {
	Query    string `json:"query"`
	Duration int    `json:"duration"`

	// Classifier.
	Topic           string         `json:"topic,omitempty"`
	Rejected        bool           `json:"rejected"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	Classification  Classification `json:"classification,omitempty"`

	// Content.
	Markdown        string `json:"markdown,omitempty"`
	ContentDegraded bool   `json:"contentDegraded"`

	// Media.
	ImageURL    string `json:"imageUrl,omitempty"`
	AudioText   string `json:"audioText,omitempty"`
	MediaFailed bool   `json:"mediaFailed"`

	Errors []StageFailure `json:"errors,omitempty"`
}

// NewPipelineState returns a fresh state for query with duration clamped.
func NewPipelineState(query string, duration int) *PipelineState {
	return &PipelineState{
		Query:    query,
		Duration: ClampDuration(duration),
	}
}

func (st *PipelineState) recordFailure(stage NodeName, err error) {
	st.Errors = append(st.Errors, StageFailure{Stage: string(stage), Message: err.Error()})
}

// ClampDuration forces d into [MinDuration, MaxDuration]. Zero is treated as
// "not given" and yields DefaultDuration.
func ClampDuration(d int) int {
	switch {
	case d == 0:
		return DefaultDuration
	case d < MinDuration:
		return MinDuration
	case d > MaxDuration:
		return MaxDuration
	}
	return d
}

// NormalizeDuration accepts whatever a client sent as duration (a JSON number,
// a numeric string, nothing) and returns a value in [MinDuration, MaxDuration].
// Absent, zero and non-numeric input yields DefaultDuration. Fractions inside
// the range are truncated; anything below MinDuration clamps to MinDuration.
func NormalizeDuration(v any) int {
	switch d := v.(type) {
	case nil:
		return DefaultDuration
	case int:
		return ClampDuration(d)
	case int64:
		return ClampDuration(clampInt64(d))
	case float64:
		return clampFloat(d)
	case json.Number:
		if n, err := d.Int64(); err == nil {
			return ClampDuration(clampInt64(n))
		}
		if f, err := d.Float64(); err == nil {
			return clampFloat(f)
		}
		return DefaultDuration
	case string:
		s := strings.TrimSpace(d)
		if n, err := strconv.Atoi(s); err == nil {
			return ClampDuration(n)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return clampFloat(f)
		}
		return DefaultDuration
	}
	return DefaultDuration
}

// clampFloat treats only an exact zero as "not given"; any other value below
// MinDuration, fractional or negative, clamps to MinDuration.
func clampFloat(f float64) int {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0) || f == 0:
		return DefaultDuration
	case f < MinDuration:
		return MinDuration
	case f > MaxDuration:
		return MaxDuration
	}
	return int(f)
}

func clampInt64(n int64) int {
	if n > MaxDuration {
		return MaxDuration + 1
	}
	if n < -MaxDuration {
		return -MaxDuration
	}
	return int(n)
}
