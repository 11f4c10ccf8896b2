package main

import (
	"strings"

	"github.com/tidwall/gjson"
)

// substituted whenever a real revision date cannot be determined.
const SENTINEL_DATE = "1970-01-01T12:28:29Z"

// the best-effort outcome of locating a packaged file inside a source.
// `LatestUpdate` always holds a value, with `SENTINEL_DATE` meaning the real
// date could not be determined. `Filename` is known only when a directory
// listing produced a match, independent of the timestamp.
type FileInfo struct {
	LatestUpdate string
	Filename     string
}

// finds the first file matching `file_extension` (ignoring case) in the
// source's directory listing and returns its name together with the committer
// date of its most recent revision. only structured-hosting urls can answer
// this, anything else degrades straight to the sentinel without a network
// call. a listing with no match and a failed listing are equivalent.
func resolve_file_info(cfg Config, source_url string, file_extension string) FileInfo {
	info := FileInfo{LatestUpdate: SENTINEL_DATE}

	rp, ok := parse_repo_url(strings.TrimSuffix(source_url, "/"))
	if !ok {
		cfg.Log.Debug("not a structured-hosting url, skipping revision lookup", "url", source_url)
		return info
	}

	entry_list, ok := list_directory(cfg, rp)
	if !ok {
		return info
	}

	var path string
	for _, entry := range entry_list {
		name := entry.Get("name").String()
		if has_suffix_fold(name, file_extension) {
			info.Filename = name
			path = entry.Get("path").String()
			break
		}
	}
	if info.Filename == "" {
		cfg.Log.Warn("no entry matching extension in directory listing", "url", source_url, "extension", file_extension)
		return info
	}

	resp, ok := with_retries(cfg, "revision history", http_ok, func() (ResponseWrapper, error) {
		return github_download(cfg, rp.commits_url(cfg.APIURL, path))
	})
	if !ok {
		return info
	}

	date := gjson.Get(resp.Text, "0.commit.committer.date")
	if !date.Exists() {
		cfg.Log.Warn("no revisions found for file", "url", source_url, "path", path)
		return info
	}
	info.LatestUpdate = date.String()
	return info
}

// the timestamp-only view of `resolve_file_info`.
func latest_revision(cfg Config, source_url string, file_extension string) string {
	return resolve_file_info(cfg, source_url, file_extension).LatestUpdate
}
