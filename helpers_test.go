package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"
)

// a config with no token, no pauses between retry attempts and a quiet logger.
// the endpoint defaults are unroutable, tests point them at fake servers.
func test_config() Config {
	return Config{
		APIURL:     "http://api.test.invalid",
		StatsURL:   "http://stats.test.invalid/scenarios_stats.json",
		Retries:    3,
		RetryDelay: 0,
		Timeout:    5 * time.Second,
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Client:     &http.Client{},
	}
}

// a fake structured hosting api for 'user/repo'.
type fake_api struct {
	*httptest.Server
	last_auth         string // authorization header of the last listing request
	last_commit_query string
	listing_hits      int
	commit_hits       int
}

// `build` receives the server's base url and returns the directory listing
// body, raw file contents by path and the revision history body. an empty
// history responds 500, an absent file responds 404.
func fake_hosting_api(build func(base string) (string, map[string]string, string)) *fake_api {
	api := &fake_api{}
	mux := http.NewServeMux()
	api.Server = httptest.NewServer(mux)
	listing, files, commits := build(api.Server.URL)

	mux.HandleFunc("/repos/user/repo/contents/", func(w http.ResponseWriter, r *http.Request) {
		api.last_auth = r.Header.Get("Authorization")
		api.listing_hits++
		io.WriteString(w, listing)
	})
	mux.HandleFunc("/repos/user/repo/commits", func(w http.ResponseWriter, r *http.Request) {
		api.commit_hits++
		api.last_commit_query = r.URL.RawQuery
		if commits == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, commits)
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		content, present := files[r.URL.Path]
		if !present {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, content)
	})
	return api
}
