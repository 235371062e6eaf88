package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Request is an analysis request loaded from a file. TOML is used unless
// the file has a .yaml or .yml extension.
//
//	mode = "multi"
//	question = "How do the frontend and backend connect?"
//	repositories = ["org/frontend", "org/backend"]
//	commits_limit = 10
type Request struct {
	Mode         string   `toml:"mode" yaml:"mode"`
	Question     string   `toml:"question" yaml:"question"`
	Repositories []string `toml:"repositories" yaml:"repositories"`
	Branch       string   `toml:"branch" yaml:"branch"`
	CommitsLimit int      `toml:"commits_limit" yaml:"commits_limit"`
	Token        string   `toml:"token" yaml:"token" masq:"secret"`
}

// LoadRequest reads a request file
func LoadRequest(path string) (*Request, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read request file", goerr.V("path", path))
	}

	var req Request
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &req); err != nil {
			return nil, goerr.Wrap(err, "failed to parse YAML request file", goerr.V("path", path))
		}
	default:
		if err := toml.Unmarshal(raw, &req); err != nil {
			return nil, goerr.Wrap(err, "failed to parse TOML request file", goerr.V("path", path))
		}
	}

	return &req, nil
}

// Merge fills empty fields of r with values from other. Values already in
// r win, so command line flags override file contents.
func (r *Request) Merge(other *Request) {
	if other == nil {
		return
	}
	if r.Mode == "" {
		r.Mode = other.Mode
	}
	if r.Question == "" {
		r.Question = other.Question
	}
	if len(r.Repositories) == 0 {
		r.Repositories = other.Repositories
	}
	if r.Branch == "" {
		r.Branch = other.Branch
	}
	if r.CommitsLimit == 0 {
		r.CommitsLimit = other.CommitsLimit
	}
	if r.Token == "" {
		r.Token = other.Token
	}
}
