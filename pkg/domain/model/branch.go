package model

import "github.com/m-mizutani/commet/pkg/domain/types"

// Branch is an entry of the live branch list
type Branch struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
}

// BranchSet is the list offered for branch selection. When IsFallback is
// true the names were synthesized locally and the first entry is the
// repository's default branch.
type BranchSet struct {
	Names          []string        `json:"names"`
	IsFallback     bool            `json:"is_fallback"`
	FallbackReason types.ErrorKind `json:"fallback_reason,omitempty"`
}

// DefaultBranchName is assumed when a repository does not report one
const DefaultBranchName = "main"

// CommonBranchNames are offered when the live list is unavailable
var CommonBranchNames = []string{"main", "master", "develop", "dev", "staging", "production"}

// NewLiveBranchSet builds a set from a fetched branch list
func NewLiveBranchSet(branches []Branch) *BranchSet {
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	return &BranchSet{Names: names}
}

// NewFallbackBranchSet synthesizes a branch list for a failed fetch. A
// not-found repository only gets its default branch; every other failure
// class gets the default branch followed by the common names.
func NewFallbackBranchSet(defaultBranch string, reason types.ErrorKind) *BranchSet {
	if defaultBranch == "" {
		defaultBranch = DefaultBranchName
	}

	names := []string{defaultBranch}
	if reason != types.KindNotFound {
		for _, name := range CommonBranchNames {
			if name != defaultBranch {
				names = append(names, name)
			}
		}
	}

	return &BranchSet{
		Names:          names,
		IsFallback:     true,
		FallbackReason: reason,
	}
}
