package types

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Validation failures. They are detected before any network call.
var (
	ErrTagEmptyQuestion           = goerr.NewTag("empty_question")
	ErrTagMissingRepository       = goerr.NewTag("missing_repository")
	ErrTagInvalidRepositoryFormat = goerr.NewTag("invalid_repository_format")
	ErrTagTooManyRepositories     = goerr.NewTag("too_many_repositories")
)

// Remote failures. Tags are attached once where the network call is made.
var (
	ErrTagNotFound           = goerr.NewTag("not_found")
	ErrTagUnauthorized       = goerr.NewTag("unauthorized")
	ErrTagRateLimited        = goerr.NewTag("rate_limited")
	ErrTagTimeout            = goerr.NewTag("timeout")
	ErrTagServiceUnavailable = goerr.NewTag("service_unavailable")
	ErrTagUnknown            = goerr.NewTag("unknown")
)

// ErrorKind is the classification of an error tag set
type ErrorKind string

const (
	KindEmptyQuestion           ErrorKind = "EmptyQuestion"
	KindMissingRepository       ErrorKind = "MissingRepository"
	KindInvalidRepositoryFormat ErrorKind = "InvalidRepositoryFormat"
	KindTooManyRepositories     ErrorKind = "TooManyRepositories"
	KindNotFound                ErrorKind = "NotFound"
	KindUnauthorized            ErrorKind = "Unauthorized"
	KindRateLimited             ErrorKind = "RateLimited"
	KindTimeout                 ErrorKind = "Timeout"
	KindServiceUnavailable      ErrorKind = "ServiceUnavailable"
	KindUnknown                 ErrorKind = "Unknown"
)

// kindTags is ordered by precedence. goerr merges tags from wrapped causes,
// so an error carrying several tags resolves to the earliest entry here.
var kindTags = []struct {
	name string
	kind ErrorKind
}{
	{ErrTagEmptyQuestion.String(), KindEmptyQuestion},
	{ErrTagMissingRepository.String(), KindMissingRepository},
	{ErrTagInvalidRepositoryFormat.String(), KindInvalidRepositoryFormat},
	{ErrTagTooManyRepositories.String(), KindTooManyRepositories},
	{ErrTagNotFound.String(), KindNotFound},
	{ErrTagUnauthorized.String(), KindUnauthorized},
	{ErrTagRateLimited.String(), KindRateLimited},
	{ErrTagTimeout.String(), KindTimeout},
	{ErrTagServiceUnavailable.String(), KindServiceUnavailable},
	{ErrTagUnknown.String(), KindUnknown},
}

func lookupKind(err error) (ErrorKind, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		tags := goerr.Tags(e)
		if len(tags) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(tags))
		for _, t := range tags {
			set[t] = struct{}{}
		}
		for _, kt := range kindTags {
			if _, ok := set[kt.name]; ok {
				return kt.kind, true
			}
		}
	}
	return KindUnknown, false
}

// KindOf returns the classification attached to err or any error it wraps.
// Errors without a known tag are KindUnknown.
func KindOf(err error) ErrorKind {
	kind, _ := lookupKind(err)
	return kind
}

// IsValidation reports whether the kind is detected before dispatch
func (k ErrorKind) IsValidation() bool {
	switch k {
	case KindEmptyQuestion, KindMissingRepository, KindInvalidRepositoryFormat, KindTooManyRepositories:
		return true
	}
	return false
}

// HasKnownKind reports whether err already carries a classification tag
func HasKnownKind(err error) bool {
	_, ok := lookupKind(err)
	return ok
}
