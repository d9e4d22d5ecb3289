package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// report prints v as JSON when -json or -q is set, and its markdown
// rendering otherwise.
func report(v any, markdown func() string) subcommands.ExitStatus {
	if !*asJSON && *query == "" {
		printMarkdown(markdown())
		return subcommands.ExitSuccess
	}
	out, err := toJSON(v, *query)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, string(out))
	return subcommands.ExitSuccess
}

// toJSON marshals v, or the result of the JSONPath expression path on v.
func toJSON(v any, path string) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil || path == "" {
		return b, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	res, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return json.MarshalIndent(res, "", "  ")
}

// printMarkdown renders md for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
