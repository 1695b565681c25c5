package naming

import (
	"strings"
	"unicode"

	"github.com/broady/stubkit/stubgen/model"
)

// Keywords of the stub target language that cannot name a member.
var reservedWords = map[string]bool{
	"abstract":  true,
	"as":        true,
	"base":      true,
	"bool":      true,
	"break":     true,
	"byte":      true,
	"case":      true,
	"catch":     true,
	"char":      true,
	"checked":   true,
	"class":     true,
	"const":     true,
	"continue":  true,
	"decimal":   true,
	"default":   true,
	"delegate":  true,
	"do":        true,
	"double":    true,
	"else":      true,
	"enum":      true,
	"event":     true,
	"explicit":  true,
	"extern":    true,
	"false":     true,
	"finally":   true,
	"fixed":     true,
	"float":     true,
	"for":       true,
	"foreach":   true,
	"goto":      true,
	"if":        true,
	"implicit":  true,
	"in":        true,
	"int":       true,
	"interface": true,
	"internal":  true,
	"is":        true,
	"lock":      true,
	"long":      true,
	"namespace": true,
	"new":       true,
	"null":      true,
	"object":    true,
	"operator":  true,
	"out":       true,
	"override":  true,
	"params":    true,
	"private":   true,
	"protected": true,
	"public":    true,
	"readonly":  true,
	"ref":       true,
	"return":    true,
	"sbyte":     true,
	"sealed":    true,
	"short":     true,
	"sizeof":    true,
	"static":    true,
	"string":    true,
	"struct":    true,
	"switch":    true,
	"this":      true,
	"throw":     true,
	"true":      true,
	"try":       true,
	"typeof":    true,
	"uint":      true,
	"ulong":     true,
	"unchecked": true,
	"unsafe":    true,
	"ushort":    true,
	"using":     true,
	"virtual":   true,
	"void":      true,
	"volatile":  true,
	"while":     true,
}

// escapeReservedWord escapes a reserved word by appending an underscore.
func escapeReservedWord(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// Identifier makes name a valid member identifier.
func Identifier(name string) string {
	if name == "" {
		return "_"
	}

	var result strings.Builder

	// Handle leading digit
	if unicode.IsDigit(rune(name[0])) {
		result.WriteRune('_')
	}

	// Replace invalid characters with underscores
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}

	return escapeReservedWord(result.String())
}

// FriendlyTypeName renders t as an identifier fragment: "int" → "Int",
// "System.String" → "String", "List<int>" → "ListInt", "byte[]" →
// "ByteArray", "string?" → "NullableString".
func FriendlyTypeName(t model.TypeRef) string {
	var s string
	switch t.Kind {
	case model.TypeVoid:
		s = "Void"
	case model.TypeArray:
		if t.Elem != nil {
			s = FriendlyTypeName(*t.Elem) + "Array"
		} else {
			s = "Array"
		}
	default:
		name := t.Name
		if i := strings.LastIndexAny(name, ".:"); i >= 0 {
			name = name[i+1:]
		}
		if i := strings.IndexByte(name, '`'); i >= 0 {
			name = name[:i]
		}
		s = capitalize(name)
		for _, a := range t.Args {
			s += FriendlyTypeName(a)
		}
	}
	if t.Nullable && t.Kind != model.TypeVoid {
		s = "Nullable" + s
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
