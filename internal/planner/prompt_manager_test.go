package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptManager_DefaultInstruction(t *testing.T) {
	pm := NewPromptManager(t.TempDir())

	got := pm.Instruction("trip to Kyoto")

	assert.Contains(t, got, "Goal: 'trip to Kyoto'")
	assert.Contains(t, got, "day-wise plan")
}

func TestPromptManager_TemplateOverride(t *testing.T) {
	dir := t.TempDir()
	tmpl := "Plan this: {{goal}}. Keep it short."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planner.md"), []byte(tmpl), 0644))

	pm := NewPromptManager(dir)

	assert.Equal(t, "Plan this: trip to Kyoto. Keep it short.", pm.Instruction("trip to Kyoto"))
}

func TestPromptManager_TemplateWithoutPlaceholderFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planner.md"), []byte("no placeholder here"), 0644))

	pm := NewPromptManager(dir)

	assert.Contains(t, pm.Instruction("trip to Kyoto"), "Goal: 'trip to Kyoto'")
}

func TestPromptManager_SystemPrompt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "identity.md"), []byte("Identity Content"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tone.md"), []byte("Tone Content"), 0644))
	// planner.md is the instruction template, not part of the system prompt.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planner.md"), []byte("{{goal}}"), 0644))

	pm := NewPromptManager(dir)
	prompt := pm.SystemPrompt()

	assert.Contains(t, prompt, "Identity Content")
	assert.Contains(t, prompt, "Tone Content")
	assert.NotContains(t, prompt, "{{goal}}")
}

func TestPromptManager_SystemPromptEmptyDir(t *testing.T) {
	pm := NewPromptManager(t.TempDir())

	assert.Empty(t, pm.SystemPrompt())
}
