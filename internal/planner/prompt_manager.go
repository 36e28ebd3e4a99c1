package planner

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const defaultInstruction = "Goal: '%s'. Create a detailed, actionable, day-wise plan including travel, food, sightseeing, and rest. Write each day as a 'Day N' heading followed by numbered steps, one step per line."

// PromptManager builds the model instruction for a goal. Templates
// live as markdown files in a directory so they can be tuned without
// a rebuild; missing files fall back to the built-in instruction.
type PromptManager struct {
	Directory string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Directory: dir}
}

// Instruction returns the planner instruction with the goal
// interpolated. The template file uses a {{goal}} placeholder.
func (pm *PromptManager) Instruction(goal string) string {
	path := filepath.Join(pm.Directory, "planner.md")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf(defaultInstruction, goal)
	}
	tmpl := strings.TrimSpace(string(data))
	if !strings.Contains(tmpl, "{{goal}}") {
		log.Printf("Warning: prompt template %s has no {{goal}} placeholder, using default", path)
		return fmt.Sprintf(defaultInstruction, goal)
	}
	return strings.ReplaceAll(tmpl, "{{goal}}", goal)
}

// SystemPrompt concatenates any system prompt files in the directory,
// in name order. An empty result means no system message is sent.
func (pm *PromptManager) SystemPrompt() string {
	entries, err := os.ReadDir(pm.Directory)
	if err != nil {
		return ""
	}
	var contents []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") || name == "planner.md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(pm.Directory, name))
		if err != nil {
			log.Printf("Warning: failed to read prompt file %s: %v", name, err)
			continue
		}
		contents = append(contents, strings.TrimSpace(string(data)))
	}
	return strings.Join(contents, "\n\n---\n\n")
}
