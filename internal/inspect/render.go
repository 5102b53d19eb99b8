package inspect

import (
	"fmt"
	"strings"
)

// RenderMermaid renders the schema as a mermaid erDiagram block.
func RenderMermaid(tables []Table) string {
	var b strings.Builder
	b.WriteString("erDiagram\n")

	for _, table := range tables {
		fmt.Fprintf(&b, "    %s {\n", table.Name)
		for _, col := range table.Columns {
			fmt.Fprintf(&b, "        %s %s", mermaidType(col.Type), col.Name)
			if col.PrimaryKey {
				b.WriteString(" PK")
			} else if refersOut(table, col.Name) {
				b.WriteString(" FK")
			}
			b.WriteString("\n")
		}
		b.WriteString("    }\n")
	}

	for _, table := range tables {
		for _, fk := range table.ForeignKeys {
			// many child rows may reference one parent row
			fmt.Fprintf(&b, "    %s }o--|| %s : %s\n", table.Name, fk.RefTable, fk.FromColumn)
		}
	}

	return b.String()
}

// RenderDOT renders the schema as a graphviz digraph with record nodes.
func RenderDOT(tables []Table) string {
	var b strings.Builder
	b.WriteString("digraph schema {\n")
	b.WriteString("    rankdir=LR;\n")
	b.WriteString("    node [shape=record, fontsize=10];\n\n")

	for _, table := range tables {
		fields := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			field := col.Name + " " + col.Type
			if col.PrimaryKey {
				field += " PK"
			}
			fields = append(fields, dotEscape(field))
		}
		fmt.Fprintf(&b, "    %s [label=\"{%s|%s}\"];\n",
			table.Name, table.Name, strings.Join(fields, "|"))
	}

	b.WriteString("\n")
	for _, table := range tables {
		for _, fk := range table.ForeignKeys {
			fmt.Fprintf(&b, "    %s -> %s [label=\"%s\"];\n", table.Name, fk.RefTable, fk.FromColumn)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// mermaidType normalizes a sqlite column type for mermaid, which rejects
// parenthesized size suffixes like varchar(255).
func mermaidType(sqlType string) string {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if idx := strings.IndexByte(t, '('); idx >= 0 {
		t = t[:idx]
	}
	t = strings.ReplaceAll(t, " ", "_")
	if t == "" {
		t = "any"
	}
	return t
}

func refersOut(table Table, column string) bool {
	for _, fk := range table.ForeignKeys {
		if fk.FromColumn == column {
			return true
		}
	}
	return false
}

// dotEscape escapes the characters that delimit record label fields.
func dotEscape(s string) string {
	r := strings.NewReplacer(
		"{", "\\{", "}", "\\}",
		"|", "\\|",
		"<", "\\<", ">", "\\>",
		`"`, `\"`,
	)
	return r.Replace(s)
}
