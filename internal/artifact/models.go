package artifact

import "time"

// ID uniquely identifies a stored artifact.
type ID string

// Artifact is one rendered visual held for later retrieval.
type Artifact struct {
	ID          ID
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}
