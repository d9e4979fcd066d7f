// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
)

// GeoServer is a fake web geolocation service answering requests for
// "/json/ADDRESS" with {"country": LABEL} and "/text/ADDRESS" with the plain
// LABEL. Unknown addresses get a 404.
type GeoServer struct {
	*httptest.Server
	labels   map[string]string
	requests atomic.Int64
}

// NewGeoServer starts a new fake geolocation service knowing the specified
// address-to-label mapping. Callers must Close the server when done.
func NewGeoServer(labels map[string]string) *GeoServer {
	s := &GeoServer{labels: labels}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Requests returns the number of requests served so far.
func (s *GeoServer) Requests() int {
	return int(s.requests.Load())
}

func (s *GeoServer) serve(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	kind, addr, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	label, ok := s.labels[addr]
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch kind {
	case "json":
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]string{"country": label})
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(label + "\n"))
	default:
		http.NotFound(w, r)
	}
}
