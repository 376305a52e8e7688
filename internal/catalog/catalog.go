// Package catalog holds the static survey content: the question list and the
// per-category labels and descriptions. A Catalog is built once at startup and
// never mutated afterwards.
package catalog

import (
	"fmt"
	"os"

	"careervision/internal/model"

	"gopkg.in/yaml.v3"
)

// CategoryInfo is the display metadata for one category
type CategoryInfo struct {
	Category    model.Category `json:"category" yaml:"category"`
	Letter      string         `json:"letter" yaml:"-"`
	Label       string         `json:"label" yaml:"label"`
	Description string         `json:"description" yaml:"description"`
}

// Catalog is the immutable survey configuration table
type Catalog struct {
	questions  []model.Question
	categories []CategoryInfo
	byCategory map[model.Category]CategoryInfo
}

type fileFormat struct {
	Questions  []model.Question `yaml:"questions"`
	Categories []CategoryInfo   `yaml:"categories"`
}

// New validates the inputs and builds a Catalog from copies of them.
func New(questions []model.Question, categories []CategoryInfo) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog: no questions")
	}

	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if q.ID <= 0 {
			return nil, fmt.Errorf("catalog: question id %d must be positive", q.ID)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("catalog: duplicate question id %d", q.ID)
		}
		if !q.Category.Valid() {
			return nil, fmt.Errorf("catalog: question %d has unknown category %q", q.ID, q.Category)
		}
		seen[q.ID] = true
	}

	byCategory := make(map[model.Category]CategoryInfo, len(categories))
	for _, info := range categories {
		if !info.Category.Valid() {
			return nil, fmt.Errorf("catalog: unknown category %q", info.Category)
		}
		info.Letter = info.Category.Letter()
		byCategory[info.Category] = info
	}
	ordered := make([]CategoryInfo, 0, len(model.Categories))
	for _, c := range model.Categories {
		info, ok := byCategory[c]
		if !ok {
			info = CategoryInfo{Category: c, Letter: c.Letter(), Label: fmt.Sprintf("%s (%s)", c, c.Letter())}
			byCategory[c] = info
		}
		ordered = append(ordered, info)
	}

	qs := make([]model.Question, len(questions))
	copy(qs, questions)

	return &Catalog{
		questions:  qs,
		categories: ordered,
		byCategory: byCategory,
	}, nil
}

// Load reads a YAML catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Questions, f.Categories)
}

// Questions returns the question list in presentation order
func (c *Catalog) Questions() []model.Question {
	out := make([]model.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Len is the number of questions
func (c *Catalog) Len() int { return len(c.questions) }

// Question returns the question at position i
func (c *Catalog) Question(i int) (model.Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return model.Question{}, false
	}
	return c.questions[i], true
}

// Categories returns category metadata in canonical order
func (c *Catalog) Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(c.categories))
	copy(out, c.categories)
	return out
}

// Info returns the metadata for one category
func (c *Catalog) Info(cat model.Category) CategoryInfo {
	return c.byCategory[cat]
}

// ExpandCode maps each letter of a career code to its category label.
// Letters that do not name a category are passed through unchanged.
func (c *Catalog) ExpandCode(code string) []string {
	labels := make([]string, 0, len(code))
	for _, r := range code {
		letter := string(r)
		if cat, ok := model.CategoryFromLetter(letter); ok {
			labels = append(labels, c.byCategory[cat].Label)
			continue
		}
		labels = append(labels, letter)
	}
	return labels
}
