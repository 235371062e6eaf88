package model

import "github.com/m-mizutani/commet/pkg/domain/types"

var exampleQuestions = map[types.Mode][]string{
	types.ModeSingle: {
		"What is the main programming language used in this repository?",
		"What are the recent changes in this codebase?",
		"Who are the main contributors to this project?",
		"What is the development activity pattern?",
		"What technologies and frameworks are used?",
		"What is the code quality and structure like?",
	},
	types.ModeMulti: {
		"How do these projects work together and what are their connections?",
		"What are the API endpoints and schemas between the frontend and backend?",
		"How can I integrate these projects to build a complete application?",
		"What are the data flow patterns and how does data move between projects?",
		"How do I set up the development environment for all these projects?",
		"What are the shared dependencies and how do I manage them?",
		"How can I adapt the frontend to work with the backend API responses?",
		"What are the authentication and security patterns across these projects?",
		"How do I deploy these connected projects together?",
		"What are the database schemas and how do they relate between projects?",
	},
}

// ExampleQuestions returns suggested questions for a mode
func ExampleQuestions(mode types.Mode) []string {
	questions := exampleQuestions[mode]
	result := make([]string, len(questions))
	copy(result, questions)
	return result
}
