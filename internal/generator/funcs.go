package generator

import (
	"strings"
	"text/template"

	"sigsub/internal/model"
	"sigsub/internal/sigfile"
)

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// Node helpers
		"kind":    sigfile.KindOf,
		"name":    sigfile.NameOf,
		"decls":   bodyDecls,
		"members": bodyMembers,
		"scope":   scopeOf,
		"self":    func(n model.Node) string { return selfPrefix(scopeOf(n)) },

		// String manipulation
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"hasPrefix": strings.HasPrefix,
		"indent":    indent,

		// Comment formatting
		"comment": formatComment,

		// Misc
		"notLast": func(i, length int) bool { return i < length-1 },
	}
}

// bodyDecls returns the nested declarations of a class or module.
func bodyDecls(n model.Node) []model.Decl {
	if c, ok := n.(model.Container); ok {
		return c.EachDecl()
	}
	return nil
}

// bodyMembers returns the members of a class, module or interface.
func bodyMembers(n model.Node) []model.Member {
	switch n := n.(type) {
	case model.Container:
		return n.EachMember()
	case *model.Interface:
		return n.EachMember()
	}
	return nil
}

// scopeOf returns the method kind of a member, or "" when it has none.
func scopeOf(n model.Node) string {
	switch n := n.(type) {
	case *model.MethodDefinition:
		return string(n.Kind)
	case *model.Alias:
		return string(n.Kind)
	case *model.AttrReader:
		return string(n.Kind)
	case *model.AttrWriter:
		return string(n.Kind)
	case *model.AttrAccessor:
		return string(n.Kind)
	}
	return ""
}

func selfPrefix(scope string) string {
	if scope == string(model.KindSingleton) {
		return "self."
	}
	return ""
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// formatComment renders text as # comment lines.
func formatComment(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line = strings.TrimRight(line, " \t"); line == "" {
			lines[i] = "#"
		} else {
			lines[i] = "# " + line
		}
	}
	return strings.Join(lines, "\n")
}
