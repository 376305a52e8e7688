package model

import "strings"

// Category is one of the six RIASEC interest types
type Category string

const (
	Realistic     Category = "Realistic"
	Investigative Category = "Investigative"
	Artistic      Category = "Artistic"
	Social        Category = "Social"
	Enterprising  Category = "Enterprising"
	Conventional  Category = "Conventional"
)

// Categories lists every category in canonical R-I-A-S-E-C order
var Categories = []Category{Realistic, Investigative, Artistic, Social, Enterprising, Conventional}

// Letter returns the one-letter code used in career codes (e.g. "S" for Social)
func (c Category) Letter() string {
	if c == "" {
		return ""
	}
	return string(c[0])
}

// Valid reports whether c is one of the six categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryFromLetter resolves a code letter back to its category
func CategoryFromLetter(letter string) (Category, bool) {
	letter = strings.ToUpper(letter)
	for _, c := range Categories {
		if c.Letter() == letter {
			return c, true
		}
	}
	return "", false
}
