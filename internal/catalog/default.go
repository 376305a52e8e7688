package catalog

import "careervision/internal/model"

var defaultQuestions = []model.Question{
	// Realistic
	{ID: 1, Text: "I enjoy repairing machines or equipment.", Category: model.Realistic},
	{ID: 2, Text: "I prefer working outdoors and moving my body.", Category: model.Realistic},
	{ID: 3, Text: "I am good at handling complex tools or electronics.", Category: model.Realistic},
	{ID: 4, Text: "I like producing concrete, practical results.", Category: model.Realistic},
	{ID: 5, Text: "I am interested in caring for plants or animals.", Category: model.Realistic},

	// Investigative
	{ID: 6, Text: "I enjoy working through math or science problems.", Category: model.Investigative},
	{ID: 7, Text: "I like analyzing and researching why things happen.", Category: model.Investigative},
	{ID: 8, Text: "I get absorbed in interpreting complex data and finding patterns.", Category: model.Investigative},
	{ID: 9, Text: "I enjoy acquiring and exploring new knowledge.", Category: model.Investigative},
	{ID: 10, Text: "I like testing abstract ideas logically.", Category: model.Investigative},

	// Artistic
	{ID: 11, Text: "I am interested in creative writing or artistic activities.", Category: model.Artistic},
	{ID: 12, Text: "I prefer free environments without rigid formats.", Category: model.Artistic},
	{ID: 13, Text: "I enjoy coming up with new and unusual ideas.", Category: model.Artistic},
	{ID: 14, Text: "Artistic self-expression such as music, art or acting matters to me.", Category: model.Artistic},
	{ID: 15, Text: "I like pursuing aesthetic beauty and designing things.", Category: model.Artistic},

	// Social
	{ID: 16, Text: "Teaching or helping others is rewarding for me.", Category: model.Social},
	{ID: 17, Text: "I am good at listening to people's concerns and counseling them.", Category: model.Social},
	{ID: 18, Text: "I like reaching shared goals through teamwork.", Category: model.Social},
	{ID: 19, Text: "I am interested in solving social problems or volunteering.", Category: model.Social},
	{ID: 20, Text: "I enjoy talking with strangers and building relationships.", Category: model.Social},

	// Enterprising
	{ID: 21, Text: "I like persuading or leading other people.", Category: model.Enterprising},
	{ID: 22, Text: "I enjoy setting goals and delivering business results.", Category: model.Enterprising},
	{ID: 23, Text: "I want to push new projects forward even if it means taking risks.", Category: model.Enterprising},
	{ID: 24, Text: "I am confident presenting or negotiating in front of others.", Category: model.Enterprising},
	{ID: 25, Text: "Success, recognition and financial achievement are important to me.", Category: model.Enterprising},

	// Conventional
	{ID: 26, Text: "I am good at organizing and recording data accurately.", Category: model.Conventional},
	{ID: 27, Text: "I am comfortable working by set rules and procedures.", Category: model.Conventional},
	{ID: 28, Text: "I like checking and managing details carefully.", Category: model.Conventional},
	{ID: 29, Text: "I am skilled at clerical, accounting or administrative work.", Category: model.Conventional},
	{ID: 30, Text: "I prefer a systematic, well-ordered work environment.", Category: model.Conventional},
}

var defaultCategories = []CategoryInfo{
	{Category: model.Realistic, Label: "Realistic (R)", Description: "Hands-on and field oriented; comfortable with tools and machines."},
	{Category: model.Investigative, Label: "Investigative (I)", Description: "Analytical and intellectually curious; prefers research."},
	{Category: model.Artistic, Label: "Artistic (A)", Description: "Creative and expressive; values a distinct personal style."},
	{Category: model.Social, Label: "Social (S)", Description: "Helps and teaches others; values relationships."},
	{Category: model.Enterprising, Label: "Enterprising (E)", Description: "Leads and persuades; driven by economic achievement."},
	{Category: model.Conventional, Label: "Conventional (C)", Description: "Systematic and meticulous; skilled at clerical work."},
}

// Default returns the built-in 30-item RIASEC catalog.
func Default() *Catalog {
	c, err := New(defaultQuestions, defaultCategories)
	if err != nil {
		panic(err)
	}
	return c
}
