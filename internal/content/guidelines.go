package content

import "strings"

const (
	guidelinesOpen   = "<mush-guidelines>"
	guidelinesClose  = "</mush-guidelines>"
	noGuidelines     = "(No guidelines defined yet)"
	noSkills         = "(No skills defined yet)"
	skillsListHeader = "Available skills:"
)

// JoinGuidelines concatenates guideline bodies in record order, separated by
// a blank line.
func JoinGuidelines(guidelines []Record) string {
	bodies := make([]string, 0, len(guidelines))
	for _, g := range guidelines {
		bodies = append(bodies, g.Body)
	}
	return strings.Join(bodies, "\n\n")
}

// RenderGuidelines builds the guideline document written to every tool: the
// joined guidelines followed by an index of the available skills. Skill
// bodies are not inlined.
func RenderGuidelines(guidelines, skills []Record) string {
	var b strings.Builder

	b.WriteString(guidelinesOpen)
	b.WriteString("\n\n=== Guidelines ===\n\n")
	if joined := JoinGuidelines(guidelines); joined != "" {
		b.WriteString(joined)
	} else {
		b.WriteString(noGuidelines)
	}

	b.WriteString("\n\n=== Skills ===\n\n")
	if len(skills) == 0 {
		b.WriteString(noSkills)
	} else {
		b.WriteString(skillsListHeader)
		b.WriteString("\n")
		for _, s := range skills {
			b.WriteString("- **")
			b.WriteString(s.Key)
			b.WriteString("**")
			if s.Description != "" {
				b.WriteString(": ")
				b.WriteString(s.Description)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(guidelinesClose)
	b.WriteString("\n")
	return b.String()
}
