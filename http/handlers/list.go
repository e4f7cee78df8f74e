package handlers

import (
	"net/http"

	"eduportal/http/middleware"
)

// listAll reports whether the caller asked for unfiltered results and holds an
// admin session. Anonymous callers always get the public view.
func listAll(r *http.Request) bool {
	return r.URL.Query().Get("all") == "true" && middleware.AdminFrom(r.Context()) != nil
}
