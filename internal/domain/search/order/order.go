package order

import "encoding/json"

// Direction is the sort direction.
type Direction string

// Sort direction constants.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// RelevanceField sorts by engine relevance score.
const RelevanceField = "_score"

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// Spec is a single sort instruction.
type Spec struct {
	field     string
	direction Direction
}

// Default sorts by relevance, highest first.
func Default() Spec {
	return Spec{field: RelevanceField, direction: Desc}
}

// New creates a Spec. Empty values fall back to the defaults.
// Field names and directions are passed to the engine as is.
func New(field string, dir Direction) Spec {
	if field == "" {
		field = RelevanceField
	}
	if dir == "" {
		dir = Desc
	}
	return Spec{field: field, direction: dir}
}

// Field returns the sort field.
func (s Spec) Field() string { return s.field }

// Direction returns the sort direction.
func (s Spec) Direction() Direction { return s.direction }

// MarshalJSON renders {"<field>":{"order":"<dir>"}}.
func (s Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]Direction{
		s.field: {"order": s.direction},
	})
}
