package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbol_Validate(t *testing.T) {
	valid := func() Symbol {
		return Symbol{USR: "s:Foo", Name: "Foo", Kind: KindType, Subkind: "struct", Line: 10}
	}

	tests := []struct {
		name    string
		mutate  func(*Symbol)
		wantErr bool
	}{
		{"valid type", func(*Symbol) {}, false},
		{"valid method with owner", func(s *Symbol) {
			s.Kind, s.Subkind, s.ParentUSR = KindMethod, SubkindFunc, "s:Bar"
		}, false},
		{"method without owner", func(s *Symbol) { s.Kind, s.Subkind = KindMethod, SubkindFunc }, false},
		{"empty usr", func(s *Symbol) { s.USR = "" }, true},
		{"property", func(s *Symbol) { s.Kind, s.Subkind = KindProperty, SubkindVar }, true},
		{"unknown type subkind", func(s *Symbol) { s.Subkind = "union" }, true},
		{"method with type subkind", func(s *Symbol) { s.Kind = KindMethod }, true},
		{"negative line", func(s *Symbol) { s.Line = -1 }, true},
		{"type with owner", func(s *Symbol) { s.ParentUSR = "s:Outer" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym := valid()
			tt.mutate(&sym)
			err := sym.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	empty := valid()
	empty.USR = ""
	assert.ErrorIs(t, empty.Validate(), ErrEmptyUSR)
}
