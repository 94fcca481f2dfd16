package parser

import (
	"slices"
	"strings"

	"github.com/dshills/symquery/pkg/types"
)

// structuralPrefix marks kind labels that may name a nominal type
const structuralPrefix = "swift."

var (
	methodMarkers   = []string{".func", ".method", ".init"}
	propertyMarkers = []string{"var", "property"}
)

// Classify maps a raw kind label such as "swift.struct" or "swift.type.method"
// to a normalized (kind, subkind) pair. The first matching rule wins and the
// comparison is case-insensitive. Every label maps to exactly one pair.
func Classify(label string) (types.SymbolKind, string) {
	raw := strings.ToLower(label)

	if containsAny(raw, methodMarkers) {
		return types.KindMethod, types.SubkindFunc
	}

	if rest, ok := strings.CutPrefix(raw, structuralPrefix); ok && slices.Contains(types.TypeSubkinds, rest) {
		return types.KindType, rest
	}

	if containsAny(raw, propertyMarkers) {
		return types.KindProperty, types.SubkindVar
	}

	return types.KindOther, raw
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
