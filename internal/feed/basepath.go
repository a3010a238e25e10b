package feed

import "strings"

// ResolveBasePath returns the API base path for the given feed host name.
// Local hosts serve the feed at /api directly; any other host nests it
// under the fixed deployment path (GitHub Pages style project hosting).
func ResolveBasePath(hostname, deployPrefix string) string {
	switch hostname {
	case "localhost", "127.0.0.1":
		return "/api"
	}

	prefix := strings.TrimRight(deployPrefix, "/")
	if prefix == "" {
		return "/api"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix + "/api"
}
