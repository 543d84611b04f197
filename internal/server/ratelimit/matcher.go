package ratelimit

import "strings"

// unlimited marks an endpoint exempt from limiting.
var unlimited = EndpointConfig{}

// MatchEndpoint finds the config governing a path and method. Exact path
// matches win; configs whose path ends in "/" match as prefixes, covering
// parameterized routes like "/runs/{id}". Nil means no specific config.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check is never limited.
	if path == "/health" && method == "GET" {
		return &unlimited
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefix == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefix = c
		}
	}
	return prefix
}
