package model

// Connection is an inferred relationship between selected repositories
type Connection struct {
	Description string `json:"description"`
}

const (
	ConnFrontendBackend = "Frontend-Backend API Integration"
	ConnMobileBackend   = "Mobile-Backend API Integration"
	ConnDatabase        = "Database Integration"
	ConnDocumentation   = "Documentation & Code Alignment"
	ConnSharedStack     = "Shared Technology Stack"
)

// InferConnections derives connections for a selection. Fewer than two
// repositories never produce a connection. Each rule contributes at most
// once and the result follows rule order.
func InferConnections(repos []RepositoryRef) []Connection {
	if len(repos) < 2 {
		return nil
	}

	present := make(map[ProjectType]bool)
	for _, repo := range repos {
		present[ClassifyProject(repo)] = true
	}

	var conns []Connection
	add := func(desc string) {
		conns = append(conns, Connection{Description: desc})
	}

	if present[ProjectFrontend] && present[ProjectBackend] {
		add(ConnFrontendBackend)
	}
	if present[ProjectMobile] && present[ProjectBackend] {
		add(ConnMobileBackend)
	}
	if present[ProjectDatabase] && (present[ProjectBackend] || present[ProjectFrontend]) {
		add(ConnDatabase)
	}
	if present[ProjectDocumentation] {
		add(ConnDocumentation)
	}
	if hasSharedLanguage(repos) {
		add(ConnSharedStack)
	}

	return conns
}

func hasSharedLanguage(repos []RepositoryRef) bool {
	seen := make(map[string]struct{})
	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		if _, ok := seen[repo.Language]; ok {
			return true
		}
		seen[repo.Language] = struct{}{}
	}
	return false
}

// ConnectionDescriptions flattens connections for wire formats
func ConnectionDescriptions(conns []Connection) []string {
	descs := make([]string, 0, len(conns))
	for _, c := range conns {
		descs = append(descs, c.Description)
	}
	return descs
}
