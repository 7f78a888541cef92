package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/actiongraph/pkg/domain"
)

// CatalogMarkdown lists node kinds grouped by category, one table per kind.
func CatalogMarkdown(descs []domain.Descriptor) string {
	byCategory := make(map[string][]domain.Descriptor)
	for _, d := range descs {
		byCategory[d.Category] = append(byCategory[d.Category], d)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("# Node catalog\n\n")
	for _, c := range categories {
		name := c
		if name == "" {
			name = "other"
		}
		fmt.Fprintf(&sb, "## %s\n\n", name)
		for _, d := range byCategory[c] {
			sb.WriteString(KindMarkdown(d))
		}
	}
	return sb.String()
}

// KindMarkdown describes one kind's sockets.
func KindMarkdown(d domain.Descriptor) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s\n\n", d.Kind)
	fmt.Fprintf(&sb, "- **Entries:** %s\n", list(d.Entries))
	fmt.Fprintf(&sb, "- **Signals:** %s\n\n", list(d.Signals))
	if len(d.Variables) > 0 {
		sb.WriteString("| Socket | Direction | Type | Array |\n|---|---|---|---|\n")
		for _, v := range d.Variables {
			array := ""
			if v.Array {
				array = "yes"
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", v.Name, v.Direction, v.Type, array)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func list(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return "`" + strings.Join(names, "`, `") + "`"
}

// RenderCatalog renders the catalog with render, e.g. NewRenderer().
func RenderCatalog(descs []domain.Descriptor, render func(string) (string, error)) (string, error) {
	md := CatalogMarkdown(descs)
	if render == nil {
		return md, nil
	}
	return render(md)
}
