package model

// Question is a single survey item
type Question struct {
	ID       int      `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	Category Category `json:"category" yaml:"category"`
}
