package types

// Record is one query result as it is emitted to callers, one JSON object per line.
// Members is present only for type queries with expansion that found at least
// one member declaration.
type Record struct {
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	TypeKind    string   `json:"typeKind"`
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Declaration string   `json:"declaration"`
	Doc         string   `json:"doc"`
	Members     []string `json:"members,omitempty"`
}

// HasMembers reports whether member declarations were attached
func (r *Record) HasMembers() bool {
	return len(r.Members) > 0
}
