// Package validator checks a graph definition against a node catalog without
// instantiating it.
package validator

import (
	"fmt"
	"sort"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/nodes"
	"github.com/aretw0/actiongraph/pkg/schema"
)

// Report holds what a validation run found. Errors make the definition
// unloadable; warnings describe wiring that loads but is probably a mistake.
type Report struct {
	Errors   []*schema.ValidationError
	Warnings []*schema.ValidationError
}

// OK reports whether the definition has no errors.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// Err returns the errors as a *schema.AggregateError, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return &schema.AggregateError{Errors: errs}
}

func (r *Report) fail(key, reason string, value any) {
	r.Errors = append(r.Errors, &schema.ValidationError{Key: key, Reason: reason, Value: value})
}

func (r *Report) warn(key, reason string, value any) {
	r.Warnings = append(r.Warnings, &schema.ValidationError{Key: key, Reason: reason, Value: value})
}

// Validate runs the structural checks of schema.Validate, then checks node
// kinds, config, literal inputs and links against catalog. Signal cycles and
// signals linked more than once are reported as warnings.
func Validate(def *schema.Graph, catalog *nodes.Catalog) *Report {
	r := &Report{}
	for _, err := range schema.ValidationErrors(schema.Validate(def)) {
		if ve, ok := err.(*schema.ValidationError); ok {
			r.Errors = append(r.Errors, ve)
		}
	}

	vars := make(map[string]domain.ValueType, len(def.Variables))
	for _, v := range def.Variables {
		vars[v.Name] = v.Type
		if v.Default != nil && v.Type.Valid() {
			if _, err := domain.ParseValue(v.Type, v.Default); err != nil {
				r.fail("variables."+v.Name+".default", err.Error(), v.Default)
			}
		}
	}

	descs := make(map[string]domain.Descriptor, len(def.Nodes))
	for _, nd := range def.Nodes {
		if nd.ID == "" || nd.Kind == "" {
			continue
		}
		key := "nodes." + nd.ID
		desc, err := catalog.Describe(nd.Kind)
		if err != nil {
			r.fail(key+".kind", "unknown node kind", nd.Kind)
			continue
		}
		descs[nd.ID] = desc

		if len(nd.Config) > 0 {
			n, err := catalog.Prototype(nd.Kind, nd.ID)
			if err == nil {
				err = nodes.Configure(n, nd.Config)
			}
			if err != nil {
				r.fail(key+".config", err.Error(), nil)
			}
		}

		for _, socket := range sortedKeys(nd.Inputs) {
			checkInput(r, key+".inputs."+socket, desc, socket, nd.Inputs[socket], vars)
		}
	}

	checkLinks(r, def, descs)
	warnUnusedVariables(r, def)
	return r
}

func checkInput(r *Report, key string, desc domain.Descriptor, socket string, literal any, vars map[string]domain.ValueType) {
	sd, ok := desc.Variable(socket)
	if !ok || sd.Direction != domain.DirectionIn {
		r.fail(key, "no such input on "+desc.Kind, nil)
		return
	}
	items := []any{literal}
	if list, isList := literal.([]any); isList {
		if !sd.Array && sd.Type != domain.TypeVector2 {
			r.fail(key, "single input takes one value", literal)
			return
		}
		if sd.Array {
			items = list
		}
	}
	for _, item := range items {
		if name, isVar := schema.VariableRef(item); isVar {
			if t, declared := vars[name]; declared && t != sd.Type {
				r.fail(key, fmt.Sprintf("variable %s is %s, input is %s", name, t, sd.Type), nil)
			}
			continue
		}
		if _, err := domain.ParseValue(sd.Type, item); err != nil {
			r.fail(key, err.Error(), item)
		}
	}
}

func checkLinks(r *Report, def *schema.Graph, descs map[string]domain.Descriptor) {
	signalTargets := make(map[string]int)
	edges := make(map[string][]string)

	for i, l := range def.Links {
		key := fmt.Sprintf("links.%d", i)
		from, err1 := schema.ParseEndpoint(l.From)
		to, err2 := schema.ParseEndpoint(l.To)
		if err1 != nil || err2 != nil {
			continue
		}
		fd, ok1 := descs[from.Node]
		td, ok2 := descs[to.Node]
		if !ok1 || !ok2 {
			continue
		}

		switch {
		case fd.HasSignal(from.Socket):
			if !td.HasEntry(to.Socket) {
				r.fail(key, "signal "+l.From+" must target an entry point", l.To)
				continue
			}
			signalTargets[l.From]++
			if signalTargets[l.From] == 2 {
				r.warn(key, "signal "+l.From+" is linked more than once; the last link wins", nil)
			}
			edges[from.Node] = append(edges[from.Node], to.Node)
		default:
			out, ok := fd.Variable(from.Socket)
			if !ok || out.Direction != domain.DirectionOut {
				r.fail(key, "no such signal or output on "+fd.Kind, l.From)
				continue
			}
			in, ok := td.Variable(to.Socket)
			if !ok || in.Direction != domain.DirectionIn {
				r.fail(key, "output "+l.From+" must target an input", l.To)
				continue
			}
			if in.Type != out.Type {
				r.fail(key, fmt.Sprintf("cannot link %s output to %s input", out.Type, in.Type), nil)
			}
		}
	}

	for _, cycle := range signalCycles(def, edges) {
		r.warn("links", "signal cycle "+cycle, nil)
	}
}

// signalCycles finds back edges of a depth-first walk over node-to-node signal
// links, in definition order.
func signalCycles(def *schema.Graph, edges map[string][]string) []string {
	const (
		unvisited = iota
		onStack
		done
	)
	color := make(map[string]int)
	var path []string
	var cycles []string

	var visit func(id string)
	visit = func(id string) {
		color[id] = onStack
		path = append(path, id)
		for _, next := range edges[id] {
			switch color[next] {
			case onStack:
				start := 0
				for i, p := range path {
					if p == next {
						start = i
						break
					}
				}
				cycle := ""
				for _, p := range path[start:] {
					cycle += p + " -> "
				}
				cycles = append(cycles, cycle+next)
			case unvisited:
				visit(next)
			}
		}
		path = path[:len(path)-1]
		color[id] = done
	}

	for _, nd := range def.Nodes {
		if color[nd.ID] == unvisited {
			visit(nd.ID)
		}
	}
	return cycles
}

func warnUnusedVariables(r *Report, def *schema.Graph) {
	used := make(map[string]bool)
	for _, nd := range def.Nodes {
		for _, literal := range nd.Inputs {
			items := []any{literal}
			if list, ok := literal.([]any); ok {
				items = list
			}
			for _, item := range items {
				if name, ok := schema.VariableRef(item); ok {
					used[name] = true
				}
			}
		}
	}
	for _, v := range def.Variables {
		if v.Name != "" && !used[v.Name] {
			r.warn("variables."+v.Name, "declared but never bound", nil)
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
