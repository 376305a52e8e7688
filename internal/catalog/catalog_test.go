package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"careervision/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ThirtyQuestionsFivePerCategory(t *testing.T) {
	c := Default()
	require.Equal(t, 30, c.Len())

	counts := map[model.Category]int{}
	for _, q := range c.Questions() {
		counts[q.Category]++
	}
	for _, cat := range model.Categories {
		assert.Equal(t, 5, counts[cat], "category %s", cat)
	}
}

func TestQuestions_ReturnsCopy(t *testing.T) {
	c := Default()
	qs := c.Questions()
	qs[0].Text = "mutated"

	first, ok := c.Question(0)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", first.Text)
}

func TestNew_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		questions []model.Question
	}{
		{name: "empty", questions: nil},
		{name: "duplicate id", questions: []model.Question{
			{ID: 1, Category: model.Social}, {ID: 1, Category: model.Artistic},
		}},
		{name: "non-positive id", questions: []model.Question{{ID: 0, Category: model.Social}}},
		{name: "unknown category", questions: []model.Question{{ID: 1, Category: "Cosmic"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.questions, nil)
			assert.Error(t, err)
		})
	}
}

func TestNew_FillsMissingCategoryLabels(t *testing.T) {
	c, err := New([]model.Question{{ID: 1, Text: "q", Category: model.Social}}, nil)
	require.NoError(t, err)

	infos := c.Categories()
	require.Len(t, infos, 6)
	assert.Equal(t, "Social (S)", c.Info(model.Social).Label)
	assert.Equal(t, "R", infos[0].Letter)
}

func TestExpandCode(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"Social (S)", "Artistic (A)"}, c.ExpandCode("SA"))
	assert.Equal(t, []string{"Investigative (I)", "X"}, c.ExpandCode("IX"))
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
questions:
  - id: 1
    text: "Fix engines"
    category: Realistic
  - id: 2
    text: "Paint murals"
    category: Artistic
categories:
  - category: Artistic
    label: "Art (A)"
    description: "creative"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "Art (A)", c.Info(model.Artistic).Label)
	assert.Equal(t, "creative", c.Info(model.Artistic).Description)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, c.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
