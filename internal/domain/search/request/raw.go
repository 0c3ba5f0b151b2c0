package request

import (
	"bytes"
	"encoding/json"
)

// Raw is a passthrough search forwarded to the engine without rewriting.
// The window is not checked locally; the engine rejects bad values.
type Raw struct {
	From    int
	Size    int
	Explain bool
	Source  []string
	Query   json.RawMessage
	Q       string
}

// Body wraps a structured query as {"query": ...}. Returns nil when no query is set.
func (r Raw) Body() []byte {
	if isEmptyQuery(r.Query) {
		return nil
	}
	var b bytes.Buffer
	b.WriteString(`{"query":`)
	b.Write(bytes.TrimSpace(r.Query))
	b.WriteByte('}')
	return b.Bytes()
}

func isEmptyQuery(q json.RawMessage) bool {
	switch string(bytes.TrimSpace(q)) {
	case "", "null", "{}", `""`, "false":
		return true
	}
	return false
}
