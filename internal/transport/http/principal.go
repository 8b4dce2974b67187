package http

import "net/http"

// Callers are opaque, externally authenticated principals. Authentication
// itself happens upstream; the gateway forwards the verified identity here.
const principalHeader = "X-Principal"

func principalFrom(r *http.Request) string {
	return r.Header.Get(principalHeader)
}
