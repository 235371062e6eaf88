package model

import "strings"

// ProjectType is a coarse category derived from repository name and description
type ProjectType string

const (
	ProjectFrontend      ProjectType = "Frontend"
	ProjectBackend       ProjectType = "Backend"
	ProjectMobile        ProjectType = "Mobile"
	ProjectDatabase      ProjectType = "Database"
	ProjectDocumentation ProjectType = "Documentation"
	ProjectOther         ProjectType = "Other"
)

// ProjectRule matches a project type when any name keyword is contained in
// the lower-cased repository name or any description keyword is contained in
// the lower-cased description.
type ProjectRule struct {
	Type                ProjectType
	NameKeywords        []string
	DescriptionKeywords []string
}

func (r ProjectRule) match(name, description string) bool {
	for _, kw := range r.NameKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	for _, kw := range r.DescriptionKeywords {
		if strings.Contains(description, kw) {
			return true
		}
	}
	return false
}

// Order matters: a repository may match several rules and the first one wins.
var projectRules = []ProjectRule{
	{
		Type:                ProjectFrontend,
		NameKeywords:        []string{"frontend", "client", "ui"},
		DescriptionKeywords: []string{"frontend", "react", "vue", "angular"},
	},
	{
		Type:                ProjectBackend,
		NameKeywords:        []string{"backend", "api", "server"},
		DescriptionKeywords: []string{"backend", "api", "server"},
	},
	{
		Type:                ProjectMobile,
		NameKeywords:        []string{"mobile", "app"},
		DescriptionKeywords: []string{"mobile", "ios", "android"},
	},
	{
		Type:                ProjectDatabase,
		NameKeywords:        []string{"database", "db"},
		DescriptionKeywords: []string{"database", "sql", "mongo"},
	},
	{
		Type:                ProjectDocumentation,
		NameKeywords:        []string{"docs", "documentation"},
		DescriptionKeywords: []string{"documentation", "docs"},
	},
}

// ProjectRules returns a copy of the ordered classification table
func ProjectRules() []ProjectRule {
	rules := make([]ProjectRule, len(projectRules))
	copy(rules, projectRules)
	return rules
}

// ClassifyProject maps a repository to its project type
func ClassifyProject(repo RepositoryRef) ProjectType {
	name := strings.ToLower(repo.Name())
	description := strings.ToLower(repo.Description)

	for _, rule := range projectRules {
		if rule.match(name, description) {
			return rule.Type
		}
	}
	return ProjectOther
}
