package parser

// RelationshipMemberOf is the relationship kind linking a member to its owning type
const RelationshipMemberOf = "memberOf"

// MemberOf builds the child -> owner map for one document. Only memberOf edges
// count; a source listed twice keeps its last target.
func MemberOf(rels []Relationship) map[string]string {
	owners := make(map[string]string, len(rels))
	for _, r := range rels {
		if r.Kind != RelationshipMemberOf {
			continue
		}
		owners[r.Source] = r.Target
	}
	return owners
}
