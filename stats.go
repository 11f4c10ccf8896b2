package main

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

// popularity metrics per scenario file name, as reported by the statistics
// document. built once per batch, read-only afterwards.
type StatsIndex map[string]gjson.Result

// the bare minimum shape required before indexing.
var stats_schema = jsonschema.MustCompileString("scenarios_stats.schema.json", `{
	"type": "object",
	"required": ["scenarios_stats"],
	"properties": {
		"scenarios_stats": {
			"type": "array",
			"items": {"type": "object"}
		}
	}
}`)

// fetches the statistics document and indexes its records by scenario name.
// called once per batch. every failure mode degrades to an empty index so the
// batch can proceed without metrics.
func fetch_stats(cfg Config) StatsIndex {
	index := StatsIndex{}

	resp, err := download(cfg, cfg.StatsURL, nil)
	if err != nil {
		cfg.Log.Warn("failed to fetch statistics document, continuing without metrics", "url", cfg.StatsURL, "error", err)
		return index
	}
	if resp.StatusCode != 200 {
		cfg.Log.Warn("unsuccessful response for statistics document, continuing without metrics", "url", cfg.StatsURL, "status", resp.StatusCode)
		return index
	}

	var document any
	err = json.Unmarshal([]byte(resp.Text), &document)
	if err != nil {
		cfg.Log.Warn("statistics document is not valid json, continuing without metrics", "error", err)
		return index
	}
	err = stats_schema.Validate(document)
	if err != nil {
		cfg.Log.Warn("statistics document has an unexpected shape, continuing without metrics", "error", err)
		return index
	}

	for _, record := range gjson.Get(resp.Text, "scenarios_stats").Array() {
		name := record.Get("scenario_name")
		if !name.Exists() {
			cfg.Log.Debug("statistics record without a scenario_name, skipping")
			continue
		}
		index[name.String()] = record
	}
	cfg.Log.Info("statistics document indexed", "records", len(index))
	return index
}
