package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/actiongraph"
	"github.com/aretw0/actiongraph/pkg/nodes"
	"github.com/aretw0/actiongraph/pkg/schema"
)

// GraphOverlay contains dynamic runtime data to visualize on the graph.
type GraphOverlay struct {
	Updating     []string
	CurrentState string
}

// GenerateMermaid produces a Mermaid flowchart from inspected nodes and links.
// It applies semantic styling by category:
// - Flow (gates, timers, sequence): [[Subroutine]]
// - Interpolate: ([Stadium])
// - Compare, Logic: {{Hexagon}}
// - Default: [Rectangle]
// Nodes bound to a state are grouped in a subgraph. Signal links are solid,
// variable links dotted. Overlay styles mark updating nodes and the current state.
func GenerateMermaid(infos []actiongraph.NodeInfo, links []actiongraph.LinkInfo, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var states []string
	byState := make(map[string][]actiongraph.NodeInfo)
	for _, n := range infos {
		if _, seen := byState[n.State]; !seen && n.State != "" {
			states = append(states, n.State)
		}
		byState[n.State] = append(byState[n.State], n)
	}

	for _, n := range byState[""] {
		writeNode(&sb, "    ", n)
	}
	for _, s := range states {
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", stateID(s), s)
		for _, n := range byState[s] {
			writeNode(&sb, "        ", n)
		}
		sb.WriteString("    end\n")
	}

	for _, l := range links {
		from, err1 := schema.ParseEndpoint(l.From)
		to, err2 := schema.ParseEndpoint(l.To)
		if err1 != nil || err2 != nil {
			continue
		}
		arrow := "-->"
		if l.Kind == "variable" {
			arrow = "-.->"
		}
		fmt.Fprintf(&sb, "    %s %s|\"%s → %s\"| %s\n",
			sanitizeMermaidID(from.Node), arrow, from.Socket, to.Socket, sanitizeMermaidID(to.Node))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme.
		sb.WriteString("    classDef updating fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef current fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Updating {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s updating;\n", safeID)
			}
		}
		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", stateID(overlay.CurrentState))
		}
	}

	return sb.String()
}

func writeNode(sb *strings.Builder, indent string, n actiongraph.NodeInfo) {
	opener, closer := "[", "]"
	switch n.Descriptor.Category {
	case nodes.CategoryFlow:
		opener, closer = "[[", "]]"
	case nodes.CategoryInterpolate:
		opener, closer = "([", "])"
	case nodes.CategoryCompare, nodes.CategoryLogic:
		opener, closer = "{{", "}}"
	}
	fmt.Fprintf(sb, "%s%s%s\"%s<br/><small>%s</small>\"%s\n", indent, sanitizeMermaidID(n.ID), opener, n.ID, n.Kind, closer)
}

func stateID(state string) string {
	return "state_" + sanitizeMermaidID(state)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
