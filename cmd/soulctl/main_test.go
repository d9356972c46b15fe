package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/soulbond-backend/internal/common/utils"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDeriveCommand_YAML(t *testing.T) {
	path := writeFile(t, "answers.yaml", `
q1:
  trait: Anxiety
  type: trauma
  dimensions:
    attachment_style: anxious
  weights:
    reactivity_index: 25
intent: Mirror
`)

	out, err := run(t, "derive", "--traits=true", path)
	require.NoError(t, err)

	var got struct {
		BehavioralProfile struct {
			ArchetypeName     string         `json:"archetype_name"`
			CalculatedIndexes map[string]int `json:"calculated_indexes"`
		} `json:"behavioralProfile"`
		Traumas []string `json:"traumas"`
		Skipped []string `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Anxious Stable Builder", got.BehavioralProfile.ArchetypeName)
	assert.Equal(t, 75, got.BehavioralProfile.CalculatedIndexes["reactivity_index"])
	assert.Equal(t, []string{"Anxiety"}, got.Traumas)
	assert.Equal(t, []string{"intent"}, got.Skipped)
}

func TestDeriveCommand_JSON(t *testing.T) {
	path := writeFile(t, "answers.json", `{"q1": {"dimensions": {"life_orientation": "explorer"}}}`)

	out, err := run(t, "derive", "--traits=false", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"archetype_name": "Secure Explorer"`)
}

func TestDeriveCommand_Errors(t *testing.T) {
	_, err := run(t, "derive", "--traits=false", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = run(t, "derive", "--traits=false", writeFile(t, "answers.json", `["q1"]`))
	assert.Error(t, err)
}

func TestScoreCommand(t *testing.T) {
	me := writeFile(t, "me.json", `{"id":"me","traumas":["Grief"],"intent":"Mirror","interests":["Music"]}`)
	target := writeFile(t, "target.json", `{"traumas":["Grief"],"interests":["Music"]}`)

	out, err := run(t, "score", me, target)
	require.NoError(t, err)

	var got struct {
		UserID   string   `json:"user_id"`
		TargetID string   `json:"target_id"`
		Score    int      `json:"score"`
		Reasons  []string `json:"reasons"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "me", got.UserID)
	assert.Equal(t, "target", got.TargetID)
	assert.Equal(t, 50, got.Score)
	assert.Equal(t, []string{"Grief Resonance"}, got.Reasons)
}

func TestQuestionsCommand(t *testing.T) {
	out, err := run(t, "questions", "--draw=false")
	require.NoError(t, err)
	assert.Contains(t, out, "pool_draw: 4")
	assert.Contains(t, out, "Abandonment Issues")

	out, err = run(t, "questions", "--draw=true", "--seed=5")
	require.NoError(t, err)
	var drawn []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &drawn))
	require.Len(t, drawn, 6)
	assert.Equal(t, "intent", drawn[0].ID)
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, "token", "--secret=s3cret", "--ttl=1h", "user-1")
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(strings.TrimSpace(out), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}
