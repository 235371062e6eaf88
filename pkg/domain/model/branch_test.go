package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

func TestNewFallbackBranchSet(t *testing.T) {
	tests := []struct {
		name          string
		defaultBranch string
		reason        types.ErrorKind
		want          []string
	}{
		{
			name:          "not found keeps only default branch",
			defaultBranch: "main",
			reason:        types.KindNotFound,
			want:          []string{"main"},
		},
		{
			name:          "rate limited adds common branches",
			defaultBranch: "main",
			reason:        types.KindRateLimited,
			want:          []string{"main", "master", "develop", "dev", "staging", "production"},
		},
		{
			name:          "default branch in the middle of the common list",
			defaultBranch: "develop",
			reason:        types.KindUnknown,
			want:          []string{"develop", "main", "master", "dev", "staging", "production"},
		},
		{
			name:          "custom default branch",
			defaultBranch: "trunk",
			reason:        types.KindTimeout,
			want:          []string{"trunk", "main", "master", "develop", "dev", "staging", "production"},
		},
		{
			name:          "missing default branch assumes main",
			defaultBranch: "",
			reason:        types.KindNotFound,
			want:          []string{"main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := model.NewFallbackBranchSet(tt.defaultBranch, tt.reason)
			gt.True(t, set.IsFallback)
			gt.Equal(t, set.Names, tt.want)
			gt.Equal(t, set.FallbackReason, tt.reason)

			count := 0
			for _, name := range set.Names {
				if name == set.Names[0] {
					count++
				}
			}
			gt.Equal(t, count, 1)
		})
	}
}

func TestFallbackLists_RateLimitedEqualsUnknown(t *testing.T) {
	limited := model.NewFallbackBranchSet("main", types.KindRateLimited)
	unknown := model.NewFallbackBranchSet("main", types.KindUnknown)
	gt.Equal(t, limited.Names, unknown.Names)
}

func TestNewLiveBranchSet(t *testing.T) {
	set := model.NewLiveBranchSet([]model.Branch{
		{Name: "main", Protected: true},
		{Name: "feature/x"},
	})
	gt.False(t, set.IsFallback)
	gt.Equal(t, set.Names, []string{"main", "feature/x"})
}
