package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parse_repo_url(t *testing.T) {
	cases := map[string]bool{
		"":                                                         false,
		"https://example.org/scenarios/foo":                        false,
		"https://github.com/user/repo":                             false,
		"https://raw.githubusercontent.com/user/repo":              false, // no branch
		"https://raw.githubusercontent.com/user/repo/main":         true,
		"https://raw.githubusercontent.com/user/repo/main/sub/dir": true,
	}
	for given, expected := range cases {
		_, actual := parse_repo_url(given)
		assert.Equal(t, expected, actual, given)
	}

	rp, ok := parse_repo_url("https://raw.githubusercontent.com/user/repo/main/sub/dir")
	require.True(t, ok)
	assert.Equal(t, RepoPath{User: "user", Repo: "repo", Branch: "main", Dir: "sub/dir"}, rp)
}

func Test_resolve_flat(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		io.WriteString(w, "[Quest]\nname=foo\n")
	}))
	defer srv.Close()

	cfg := test_config()
	content, ok := resolve(cfg, srv.URL+"/scenarios/", "Foo") // single trailing slash is stripped
	require.True(t, ok)
	assert.Equal(t, "[Quest]\nname=foo\n", content)
	assert.Equal(t, "/scenarios/Foo.ini", requested)
}

func Test_resolve_flat_exhausts_retries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := test_config()
	_, ok := resolve(cfg, srv.URL, "Foo")
	assert.False(t, ok)
	assert.Equal(t, cfg.Retries, attempts)
}

func Test_resolve_structured(t *testing.T) {
	api := fake_hosting_api(func(base string) (string, map[string]string, string) {
		listing := `[
			{"name": "README.md", "path": "README.md", "download_url": "` + base + `/raw/README.md"},
			{"name": "FOO.INI", "path": "FOO.INI", "download_url": "` + base + `/raw/FOO.INI"},
			{"name": "Foo.ini", "path": "Foo.ini", "download_url": "` + base + `/raw/Foo.ini"}
		]`
		files := map[string]string{"/raw/FOO.INI": "[Quest]\nname=foo\n"}
		return listing, files, ""
	})
	defer api.Close()

	cfg := test_config()
	cfg.APIURL = api.URL

	// the first name matching 'Foo.ini' case-insensitively wins.
	content, ok := resolve(cfg, "https://raw.githubusercontent.com/user/repo/main", "Foo")
	require.True(t, ok)
	assert.Equal(t, "[Quest]\nname=foo\n", content)
	assert.Equal(t, "", api.last_auth) // no token configured, no authorization header

	cfg.Token = "sekret"
	_, ok = resolve(cfg, "https://raw.githubusercontent.com/user/repo/main", "Foo")
	require.True(t, ok)
	assert.Equal(t, "token sekret", api.last_auth)
}

func Test_resolve_structured_no_match(t *testing.T) {
	api := fake_hosting_api(func(base string) (string, map[string]string, string) {
		return `[{"name": "other.ini", "path": "other.ini"}]`, nil, ""
	})
	defer api.Close()

	cfg := test_config()
	cfg.APIURL = api.URL
	_, ok := resolve(cfg, "https://raw.githubusercontent.com/user/repo/main", "Foo")
	assert.False(t, ok)
	assert.Equal(t, 1, api.listing_hits) // a successful listing with no match is not retried
}

func Test_resolve_structured_listing_not_a_list(t *testing.T) {
	api := fake_hosting_api(func(base string) (string, map[string]string, string) {
		return `{"message": "Not Found"}`, nil, ""
	})
	defer api.Close()

	cfg := test_config()
	cfg.APIURL = api.URL
	_, ok := resolve(cfg, "https://raw.githubusercontent.com/user/repo/main", "Foo")
	assert.False(t, ok)
}
