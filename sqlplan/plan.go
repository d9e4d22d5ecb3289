// Package sqlplan composes SQL queries out of named stages.
//
// A Plan is a set of common table expressions, each declaring the stages it
// reads from, and a final SELECT. Render emits the stages the final query
// depends on, dependencies first, together with their arguments in the same
// order. Values travel as placeholders; the only text interpolated in a
// query is the identifiers built by ID and IDs, which are bounded integers.
package sqlplan

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrDuplicateStage = errors.New("duplicate stage")
	ErrUnknownStage   = errors.New("unknown stage")
	ErrCycle          = errors.New("dependency cycle")
	ErrInvalidName    = errors.New("invalid stage name")
	ErrNoSelect       = errors.New("no final select")
)

var validName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Fragment is a piece of SQL with its placeholder arguments.
type Fragment struct {
	SQL  string
	Args []any
}

// Q returns a Fragment.
func Q(sql string, args ...any) Fragment { return Fragment{SQL: sql, Args: args} }

// And joins conditions with AND. Empty conditions are skipped, and no
// condition at all is true.
func And(conds ...Fragment) Fragment {
	var (
		parts []string
		args  []any
	)
	for _, c := range conds {
		if strings.TrimSpace(c.SQL) == "" {
			continue
		}
		parts = append(parts, "("+c.SQL+")")
		args = append(args, c.Args...)
	}
	if len(parts) == 0 {
		return Q("1")
	}
	return Fragment{SQL: strings.Join(parts, " AND "), Args: args}
}

// Stage is one named common table expression.
type Stage struct {
	Name string
	Body Fragment
	Deps []string
}

// Plan is a query under construction. The zero value is not usable, call New.
type Plan struct {
	stages []Stage
	index  map[string]int
	final  *Stage
	err    error
}

// New returns an empty plan.
func New() *Plan { return &Plan{index: make(map[string]int)} }

// With adds a stage reading from deps. Errors are reported by Render.
func (p *Plan) With(name string, body Fragment, deps ...string) *Plan {
	if p.err != nil {
		return p
	}
	if !validName.MatchString(name) {
		p.err = fmt.Errorf("%w: %q", ErrInvalidName, name)
		return p
	}
	if _, dup := p.index[name]; dup {
		p.err = fmt.Errorf("%w: %q", ErrDuplicateStage, name)
		return p
	}
	p.index[name] = len(p.stages)
	p.stages = append(p.stages, Stage{Name: name, Body: body, Deps: deps})
	return p
}

// Select sets the final query, reading from deps.
func (p *Plan) Select(body Fragment, deps ...string) *Plan {
	p.final = &Stage{Body: body, Deps: deps}
	return p
}

// Stages returns the names of the declared stages in declaration order.
func (p *Plan) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// order returns the stages needed by the final query, each after its
// dependencies.
func (p *Plan) order() ([]Stage, error) {
	const (
		unseen = iota
		visiting
		done
	)
	state := make([]int, len(p.stages))
	var res []Stage
	var visit func(name, from string) error
	visit = func(name, from string) error {
		i, ok := p.index[name]
		if !ok {
			return fmt.Errorf("%w: %q needed by %q", ErrUnknownStage, name, from)
		}
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w through %q", ErrCycle, name)
		}
		state[i] = visiting
		for _, d := range p.stages[i].Deps {
			if err := visit(d, name); err != nil {
				return err
			}
		}
		state[i] = done
		res = append(res, p.stages[i])
		return nil
	}
	for _, d := range p.final.Deps {
		if err := visit(d, "select"); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Render returns the query and its arguments.
func (p *Plan) Render() (string, []any, error) {
	if p.err != nil {
		return "", nil, p.err
	}
	if p.final == nil {
		return "", nil, ErrNoSelect
	}
	stages, err := p.order()
	if err != nil {
		return "", nil, err
	}
	var (
		b    strings.Builder
		args []any
	)
	for i, s := range stages {
		if i == 0 {
			b.WriteString("WITH ")
		} else {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "%s AS (\n%s\n)", s.Name, strings.TrimSpace(s.Body.SQL))
		args = append(args, s.Body.Args...)
	}
	if len(stages) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(strings.TrimSpace(p.final.Body.SQL))
	args = append(args, p.final.Body.Args...)
	return b.String(), args, nil
}
