package schema

// Validate checks the structural integrity of a definition: required fields,
// unique IDs, declared states and well-formed links. It knows nothing about node
// kinds; catalog-aware checks live in the validator.
// Returns an AggregateError with all failures found.
func Validate(g *Graph) error {
	var errs []error
	add := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	if g.Name == "" {
		add("name", "required", nil)
	}

	states := make(map[string]bool, len(g.States))
	for _, s := range g.States {
		if s == "" {
			add("states", "empty state name", nil)
			continue
		}
		if states[s] {
			add("states", "duplicate state "+s, nil)
		}
		states[s] = true
	}
	if g.Initial != "" && !states[g.Initial] {
		add("initial", "undeclared state "+g.Initial, nil)
	}

	vars := make(map[string]bool, len(g.Variables))
	for _, v := range g.Variables {
		key := "variables." + v.Name
		switch {
		case v.Name == "":
			add("variables", "variable missing name", nil)
		case vars[v.Name]:
			add(key, "duplicate variable", nil)
		case !v.Type.Valid():
			add(key+".type", "unknown value type", v.Type)
		}
		vars[v.Name] = true
	}

	ids := make(map[string]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		switch {
		case n.ID == "":
			add("nodes", "node missing id", i)
			continue
		case ids[n.ID]:
			add("nodes."+n.ID, "duplicate node id", nil)
		}
		ids[n.ID] = true

		if n.Kind == "" {
			add("nodes."+n.ID+".kind", "required", nil)
		}
		if n.State != "" && !states[n.State] {
			add("nodes."+n.ID+".state", "undeclared state "+n.State, nil)
		}
		for socket, literal := range n.Inputs {
			for _, item := range literals(literal) {
				if name, ok := VariableRef(item); ok && !vars[name] {
					add("nodes."+n.ID+".inputs."+socket, "undeclared variable "+name, nil)
				}
			}
		}
	}

	for i, l := range g.Links {
		for _, ref := range []string{l.From, l.To} {
			ep, err := ParseEndpoint(ref)
			if err != nil {
				add("links", err.Error(), i)
				continue
			}
			if !ids[ep.Node] {
				add("links", "unknown node "+ep.Node+" in "+ref, i)
			}
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// literals flattens an input literal into its elements.
func literals(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}
