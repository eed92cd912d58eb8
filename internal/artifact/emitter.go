package artifact

import (
	"encoding/base64"
	"strings"
)

// Emitter turns rendered markup into a URL the client can display.
type Emitter interface {
	Emit(contentType string, data []byte) (string, error)
}

// DataURIEmitter embeds the artifact directly as a base64 data URI, keeping
// the pipeline free of storage side effects.
type DataURIEmitter struct{}

// Emit implements Emitter.
func (DataURIEmitter) Emit(contentType string, data []byte) (string, error) {
	return DataURI(contentType, data), nil
}

// DataURI encodes data as "data:<contentType>;base64,<payload>".
func DataURI(contentType string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(contentType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(contentType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// StoreEmitter keeps artifacts in a Repository and returns a path under
// BasePath that Handler serves.
type StoreEmitter struct {
	Repo     *Repository
	BasePath string
}

// Emit implements Emitter.
func (e StoreEmitter) Emit(contentType string, data []byte) (string, error) {
	id := e.Repo.Put(contentType, data)
	return strings.TrimRight(e.BasePath, "/") + "/" + string(id), nil
}
