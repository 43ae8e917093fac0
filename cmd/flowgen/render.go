package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flowgenhq/flowgen/pkg/models"
)

var (
	taskNameStyle = lipgloss.NewStyle().Bold(true)
	taskMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	branchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

// renderTaskTree prints the validated tasks as an indented tree following
// the parent_id relation. Tasks keep their generation order within each
// level.
func renderTaskTree(tasks []models.TaskSpec) string {
	children := make(map[string][]models.TaskSpec)
	var roots []models.TaskSpec
	for _, t := range tasks {
		if t.ParentID == "" {
			roots = append(roots, t)
			continue
		}
		children[t.ParentID] = append(children[t.ParentID], t)
	}

	var b strings.Builder
	for _, root := range roots {
		renderTaskNode(&b, root, children, 0)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskNode(b *strings.Builder, task models.TaskSpec, children map[string][]models.TaskSpec, depth int) {
	indent := strings.Repeat("  ", depth)
	prefix := ""
	if depth > 0 {
		prefix = branchStyle.Render("└─ ")
	}

	b.WriteString(indent + prefix + taskNameStyle.Render(task.Name))
	if meta := taskMeta(task); meta != "" {
		b.WriteString(" " + taskMetaStyle.Render(meta))
	}
	b.WriteString("\n")

	for _, child := range children[task.EffectiveID()] {
		renderTaskNode(b, child, children, depth+1)
	}
}

// taskMeta summarizes the non-structural fields of a task for display.
func taskMeta(task models.TaskSpec) string {
	var parts []string
	if task.HasID() {
		parts = append(parts, "id="+task.ID)
	}
	if len(task.Dependencies) > 0 {
		deps := make([]string, 0, len(task.Dependencies))
		for _, d := range task.Dependencies {
			if d.Required {
				deps = append(deps, d.ID)
			} else {
				deps = append(deps, d.ID+"?")
			}
		}
		parts = append(parts, "deps="+strings.Join(deps, ","))
	}
	if task.Priority != nil {
		parts = append(parts, fmt.Sprintf("priority=%d", *task.Priority))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}
