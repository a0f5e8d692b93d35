package erd

import (
	"fmt"
	"io"
	"strings"
)

const (
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

// Render 按格式把模型的关系图写入 w
func Render(w io.Writer, format string, models ...any) error {
	d, err := Build(models...)
	if err != nil {
		return err
	}
	var out string
	switch format {
	case FormatDOT:
		out = d.DOT()
	case FormatMermaid:
		out = d.Mermaid()
	default:
		return fmt.Errorf("unknown diagram format %q", format)
	}
	_, err = io.WriteString(w, out)
	return err
}

// DOT Graphviz 格式，每张表一个 record 节点
func (d *Diagram) DOT() string {
	var b strings.Builder
	b.WriteString("digraph schema {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=record, fontname=\"Helvetica\"];\n\n")

	for _, t := range d.Tables {
		rows := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			row := c.Name + " : " + c.Type
			if keys := c.keys(); keys != "" {
				row += " [" + keys + "]"
			}
			if c.Nullable {
				row += " NULL"
			}
			rows = append(rows, dotEscape(row)+"\\l")
		}
		fmt.Fprintf(&b, "  %s [label=\"{%s|%s}\"];\n", t.Name, t.Name, strings.Join(rows, ""))
	}
	b.WriteString("\n")
	for _, r := range d.Relations {
		head := "crow"
		if r.OneToOne {
			head = "tee"
		}
		fmt.Fprintf(&b, "  %s -> %s [label=\"%s\", arrowtail=%s, dir=both, arrowhead=tee];\n", r.From, r.To, r.FromColumn, head)
	}
	b.WriteString("}\n")
	return b.String()
}

// Mermaid erDiagram 格式
func (d *Diagram) Mermaid() string {
	var b strings.Builder
	b.WriteString("erDiagram\n")
	for _, r := range d.Relations {
		card := "o{"
		if r.OneToOne {
			card = "o|"
		}
		fmt.Fprintf(&b, "    %s ||--%s %s : \"%s\"\n", r.To, card, r.From, r.FromColumn)
	}
	for _, t := range d.Tables {
		fmt.Fprintf(&b, "    %s {\n", t.Name)
		for _, c := range t.Columns {
			line := fmt.Sprintf("        %s %s", c.Type, c.Name)
			if keys := c.keys(); keys != "" {
				line += " " + keys
			}
			if c.Nullable {
				line += ` "nullable"`
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("    }\n")
	}
	return b.String()
}

func (c Column) keys() string {
	keys := make([]string, 0, 3)
	if c.PrimaryKey {
		keys = append(keys, "PK")
	}
	if c.ForeignKey {
		keys = append(keys, "FK")
	}
	if c.Unique {
		keys = append(keys, "UK")
	}
	return strings.Join(keys, ", ")
}

var dotReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "{", `\{`, "}", `\}`, "|", `\|`, "<", `\<`, ">", `\>`)

func dotEscape(s string) string {
	return dotReplacer.Replace(s)
}
