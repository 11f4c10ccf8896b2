package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// a file source addressable through the structured hosting API:
// raw.githubusercontent.com/<user>/<repo>/<branch>[/<dir>...]
type RepoPath struct {
	User   string
	Repo   string
	Branch string
	Dir    string // may be empty, the repository root
}

// recognizes the structured-hosting raw-content convention.
func parse_repo_url(source_url string) (RepoPath, bool) {
	empty_response := RepoPath{}
	u, err := url.Parse(source_url)
	if err != nil {
		return empty_response, false
	}
	if !strings.Contains(u.Host, "raw.githubusercontent.com") {
		return empty_response, false
	}
	part_list := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(part_list) < 3 {
		return empty_response, false
	}
	return RepoPath{
		User:   part_list[0],
		Repo:   part_list[1],
		Branch: part_list[2],
		Dir:    strings.Join(part_list[3:], "/"),
	}, true
}

// directory listing API call for this path.
func (rp RepoPath) contents_url(api_url string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s", api_url, rp.User, rp.Repo, rp.Dir, url.QueryEscape(rp.Branch))
}

// revision history API call for the file at `path` on this branch.
func (rp RepoPath) commits_url(api_url string, path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/commits?sha=%s&path=%s", api_url, rp.User, rp.Repo, url.QueryEscape(rp.Branch), url.QueryEscape(path))
}

// fetches the directory listing for `rp`.
// transport failures, non-200 responses and responses that are not a json
// list all come back as false.
func list_directory(cfg Config, rp RepoPath) ([]gjson.Result, bool) {
	resp, ok := with_retries(cfg, "directory listing", http_ok, func() (ResponseWrapper, error) {
		return github_download(cfg, rp.contents_url(cfg.APIURL))
	})
	if !ok {
		return nil, false
	}
	listing := gjson.Parse(resp.Text)
	if !listing.IsArray() {
		cfg.Log.Warn("directory listing is not a list", "repo", rp.User+"/"+rp.Repo, "dir", rp.Dir)
		return nil, false
	}
	return listing.Array(), true
}

// locates the metadata file for `entry_name` inside `source_url` and fetches
// its content. structured-hosting urls go through a directory listing and the
// matched entry's download url, anything else is assumed to host the file
// directly under the given base url ('flat' convention).
// returns false when the file cannot be located or fetched after retries.
func resolve(cfg Config, source_url string, entry_name string) (string, bool) {
	source_url = strings.TrimSuffix(source_url, "/")
	want := entry_name + ".ini"

	rp, ok := parse_repo_url(source_url)
	if !ok {
		resp, ok := with_retries(cfg, "direct fetch", http_ok, func() (ResponseWrapper, error) {
			return download(cfg, source_url+"/"+want, nil)
		})
		if !ok {
			return "", false
		}
		return resp.Text, true
	}

	entry_list, ok := list_directory(cfg, rp)
	if !ok {
		return "", false
	}
	for _, entry := range entry_list {
		if !strings.EqualFold(entry.Get("name").String(), want) {
			continue
		}
		resp, ok := with_retries(cfg, "raw fetch", http_ok, func() (ResponseWrapper, error) {
			return github_download(cfg, entry.Get("download_url").String())
		})
		if !ok {
			return "", false
		}
		return resp.Text, true
	}
	cfg.Log.Warn("no entry matching name in directory listing", "url", source_url, "want", want)
	return "", false
}
