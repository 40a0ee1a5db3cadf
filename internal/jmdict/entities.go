package jmdict

import (
	"fmt"
	"regexp"
	"strings"
)

// entityDeclPattern matches inline DTD declarations of the form
// <!ENTITY name "value">.
var entityDeclPattern = regexp.MustCompile(`<!ENTITY\s+(\S+)\s+"([^"]+)">`)

// EntityTable maps entity reference tokens (&name;) to their literal
// replacement text. Built once per document and discarded afterwards.
type EntityTable map[string]string

// ScanEntities collects all DTD entity declarations from doc. A document
// without a recognizable declaration block yields an empty table; expansion is
// then a no-op and the structural parser fails on the unresolved references
// instead of silently producing wrong data.
func ScanEntities(doc string) EntityTable {
	table := make(EntityTable)
	for _, m := range entityDeclPattern.FindAllStringSubmatch(doc, -1) {
		table[fmt.Sprintf("&%s;", m[1])] = m[2]
	}
	return table
}

// Expand returns a copy of doc with every declared entity reference replaced
// by its literal value. Substitution is a single pass over whole &name;
// tokens, so a short name can never clip a longer one (&n; vs &nn;).
//
// If one entity's value embeds another declared reference, the result would
// depend on substitution order; that case is rejected outright rather than
// expanded recursively.
func (t EntityTable) Expand(doc string) (string, error) {
	if len(t) == 0 {
		return doc, nil
	}
	pairs := make([]string, 0, len(t)*2)
	for ref, value := range t {
		for other := range t {
			if strings.Contains(value, other) {
				return "", fmt.Errorf("entity %s expands to text containing %s", ref, other)
			}
		}
		pairs = append(pairs, ref, value)
	}
	return strings.NewReplacer(pairs...).Replace(doc), nil
}

// ResolveEntities rewrites all entity references in doc and reports how many
// distinct entities were declared. The input is left untouched.
func ResolveEntities(doc string) (string, int, error) {
	table := ScanEntities(doc)
	resolved, err := table.Expand(doc)
	if err != nil {
		return "", 0, err
	}
	return resolved, len(table), nil
}
