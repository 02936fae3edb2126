package syntax

// Rule is the grammar production a node was produced by.
type Rule int

const (
	Grammar Rule = iota
	File

	// File level
	Package
	ImportModel
	ImportNamespace
	Interface
	TypeCollection

	// Trivia
	Comment
	MultilineComment
	AnnotationBlock
	Annotation

	// Members
	Version
	Typedef
	Method
	Attribute
	Structure
	Enumeration
	EnumValue
	InputParams
	OutputParams
	VariableDeclaration

	// Terminals
	TypeRef
	TypeDec
	VariableName
	Digits
	Number
	FilePath
	Wildcard
	OpenBracket
	CloseBracket
	AnnotationName
	AnnotationContent
)

var ruleNames = map[Rule]string{
	Grammar:             "grammar",
	File:                "file",
	Package:             "package",
	ImportModel:         "import_model",
	ImportNamespace:     "import_namespace",
	Interface:           "interface",
	TypeCollection:      "type_collection",
	Comment:             "comment",
	MultilineComment:    "multiline_comment",
	AnnotationBlock:     "annotation_block",
	Annotation:          "annotation",
	Version:             "version",
	Typedef:             "typedef",
	Method:              "method",
	Attribute:           "attribute",
	Structure:           "structure",
	Enumeration:         "enumeration",
	EnumValue:           "enum_value",
	InputParams:         "input_params",
	OutputParams:        "output_params",
	VariableDeclaration: "variable_declaration",
	TypeRef:             "type_ref",
	TypeDec:             "type_dec",
	VariableName:        "variable_name",
	Digits:              "digits",
	Number:              "number",
	FilePath:            "file_path",
	Wildcard:            "wildcard",
	OpenBracket:         "open_bracket",
	CloseBracket:        "close_bracket",
	AnnotationName:      "annotation_name",
	AnnotationContent:   "annotation_content",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsComment reports whether nodes of this rule are line or block comments.
func (r Rule) IsComment() bool {
	return r == Comment || r == MultilineComment
}
