package lsp

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/fidl/model"
)

type symbols struct {
	text []byte
}

func (s symbols) symbol(name string, kind protocol.SymbolKind, at model.Span, detail string, children []protocol.DocumentSymbol) protocol.DocumentSymbol {
	r := span(s.text, at.Start, at.End)
	sym := protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
		Children:       children,
	}
	if detail != "" {
		sym.Detail = &detail
	}
	return sym
}

// documentSymbols lists the interfaces and type collections of f with
// their members.
func documentSymbols(text []byte, f *model.File) []protocol.DocumentSymbol {
	s := symbols{text: text}
	result := []protocol.DocumentSymbol{}
	for _, tc := range f.TypeCollections {
		name := tc.Name
		if name == "" {
			name = "typeCollection"
		}
		children := s.types(tc.Typedefs, tc.Structures, tc.Enumerations)
		result = append(result, s.symbol(name, protocol.SymbolKindNamespace, tc.Span, version(tc.Version), children))
	}
	for _, iface := range f.Interfaces {
		var children []protocol.DocumentSymbol
		for _, a := range iface.Attributes {
			children = append(children, s.symbol(a.Name, protocol.SymbolKindProperty, a.Span, a.Type.String(), nil))
		}
		for _, m := range iface.Methods {
			var params []protocol.DocumentSymbol
			for _, p := range m.In {
				params = append(params, s.symbol(p.Name, protocol.SymbolKindVariable, p.Span, "in "+p.Type.String(), nil))
			}
			for _, p := range m.Out {
				params = append(params, s.symbol(p.Name, protocol.SymbolKindVariable, p.Span, "out "+p.Type.String(), nil))
			}
			children = append(children, s.symbol(m.Name, protocol.SymbolKindMethod, m.Span, "", params))
		}
		children = append(children, s.types(iface.Typedefs, iface.Structures, iface.Enumerations)...)
		result = append(result, s.symbol(iface.Name, protocol.SymbolKindInterface, iface.Span, version(iface.Version), children))
	}
	return result
}

func (s symbols) types(typedefs []model.Typedef, structures []model.Structure, enums []model.Enumeration) []protocol.DocumentSymbol {
	var result []protocol.DocumentSymbol
	for _, td := range typedefs {
		result = append(result, s.symbol(td.Name, protocol.SymbolKindTypeParameter, td.Span, td.Type.String(), nil))
	}
	for _, st := range structures {
		var fields []protocol.DocumentSymbol
		for _, f := range st.Fields {
			fields = append(fields, s.symbol(f.Name, protocol.SymbolKindField, f.Span, f.Type.String(), nil))
		}
		result = append(result, s.symbol(st.Name, protocol.SymbolKindStruct, st.Span, "", fields))
	}
	for _, e := range enums {
		var values []protocol.DocumentSymbol
		for _, v := range e.Values {
			values = append(values, s.symbol(v.Name, protocol.SymbolKindEnumMember, v.Span, "", nil))
		}
		result = append(result, s.symbol(e.Name, protocol.SymbolKindEnum, e.Span, "", values))
	}
	return result
}

func version(v *model.Version) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
}
