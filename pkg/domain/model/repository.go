package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

var fullNamePattern = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)

// IsValidFullName checks "owner/name" syntax
func IsValidFullName(s string) bool {
	return fullNamePattern.MatchString(s)
}

// RepositoryRef describes a hosted repository. Language and Description are
// empty when the hosting API does not report them.
type RepositoryRef struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	IsPrivate     bool   `json:"is_private"`
	Language      string `json:"language,omitempty"`
	Description   string `json:"description,omitempty"`
}

// NewRepositoryRef parses "owner/name" into a RepositoryRef with no metadata
func NewRepositoryRef(fullName string) (RepositoryRef, error) {
	fullName = strings.TrimSpace(fullName)
	if !IsValidFullName(fullName) {
		return RepositoryRef{}, goerr.New("invalid repository format, use 'owner/repo'",
			goerr.T(types.ErrTagInvalidRepositoryFormat),
			goerr.V("repository", fullName))
	}
	return RepositoryRef{FullName: fullName}, nil
}

// Owner returns the owner part of the full name
func (r RepositoryRef) Owner() string {
	owner, _, _ := strings.Cut(r.FullName, "/")
	return owner
}

// Name returns the repository part of the full name
func (r RepositoryRef) Name() string {
	if _, name, ok := strings.Cut(r.FullName, "/"); ok {
		return name
	}
	return r.FullName
}

// Visibility filter for the selection list
type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// FilterRepositories narrows candidates by a search term over name and
// description and by visibility. Repositories already in selected are
// excluded.
func FilterRepositories(candidates []RepositoryRef, term string, visibility Visibility, selected []RepositoryRef) []RepositoryRef {
	term = strings.ToLower(term)

	picked := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		picked[s.FullName] = struct{}{}
	}

	var result []RepositoryRef
	for _, repo := range candidates {
		if _, ok := picked[repo.FullName]; ok {
			continue
		}

		switch visibility {
		case VisibilityPublic:
			if repo.IsPrivate {
				continue
			}
		case VisibilityPrivate:
			if !repo.IsPrivate {
				continue
			}
		}

		if term != "" &&
			!strings.Contains(strings.ToLower(repo.Name()), term) &&
			!strings.Contains(strings.ToLower(repo.Description), term) {
			continue
		}

		result = append(result, repo)
	}
	return result
}
