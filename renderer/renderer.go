// Package renderer formats the reports of the engine as markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	md "github.com/nao1215/markdown"

	"github.com/etnz/alere"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are available to every template.
var funcs = template.FuncMap{
	"signed":  func(m alere.Money) string { return m.SignedString() },
	"sub":     func(a, b alere.Money) alere.Money { return a.Sub(b) },
	"percent": percent,
}

// percent formats a ratio of two amounts, not a return.
func percent(r alere.Ratio) string {
	if r.IsUndefined() {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(r)*100)
}

// renderTemplate renders a main template that depends on several partials.
// Partials are declared by the name they are called with.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}
	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}
	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// columns returns an empty table: the first column is left aligned, the
// others hold amounts.
func columns(header ...string) md.TableSet {
	align := make([]md.TableAlignment, len(header))
	for i := range align {
		align[i] = md.AlignRight
	}
	if len(align) > 0 {
		align[0] = md.AlignLeft
	}
	return md.TableSet{Alignment: align, Header: header, Rows: [][]string{}}
}

func strs[T fmt.Stringer](vs ...T) []string {
	res := make([]string, len(vs))
	for i, v := range vs {
		res[i] = v.String()
	}
	return res
}
