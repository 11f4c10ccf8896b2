package main

// one catalogue item pointing at an external source.
type CatalogueEntry struct {
	Name string
	URL  string // the catalogue's 'external' value. may be empty.
}

// statistics document field -> manifest field.
var stat_field_list = []struct{ from, to string }{
	{"scenario_avg_rating", "rating"},
	{"scenario_play_count", "play_count"},
	{"scenario_avg_duration", "duration"},
	{"scenario_avg_win_ratio", "win_ratio"},
}

// converts one catalogue entry into a manifest record: resolves the entry's
// metadata file, parses it, stamps the source url and latest revision date and
// injects any known popularity metrics. returns false when the entry has to
// be skipped, which never fails the batch.
func process_entry(cfg Config, entry CatalogueEntry, stats StatsIndex, file_extension string) (*Record, bool) {
	if entry.URL == "" {
		cfg.Log.Warn("entry has no external url, skipping", "entry", entry.Name)
		return nil, false
	}

	content, ok := resolve(cfg, entry.URL, entry.Name)
	if !ok {
		cfg.Log.Warn("could not resolve a metadata file, skipping", "entry", entry.Name, "url", entry.URL)
		return nil, false
	}

	section_list, err := parse_document(content, entry.Name)
	if err != nil {
		cfg.Log.Warn("could not parse metadata file, skipping", "entry", entry.Name, "error", err)
		return nil, false
	}
	if len(section_list) == 0 {
		cfg.Log.Warn("metadata file has no sections, skipping", "entry", entry.Name)
		return nil, false
	}

	// prefer the conventional [Quest] root section, fall back to the first
	// section for metadata files that use a different root name.
	source := section_list[0]
	for _, section := range section_list {
		if section.Name == "Quest" {
			source = section
			break
		}
	}

	record := NewRecord(entry.Name)
	for _, key := range source.Keys() {
		record.Set(key, source.Get(key))
	}

	info := resolve_file_info(cfg, entry.URL, file_extension)
	record.Set("url", entry.URL)
	record.Set("latest_update", info.LatestUpdate)

	if info.Filename != "" {
		metrics, present := stats[info.Filename]
		if present {
			for _, field := range stat_field_list {
				val := metrics.Get(field.from)
				if val.Exists() {
					record.Set(field.to, val.String())
				}
			}
		}
	}

	cfg.Log.Info("entry processed", "entry", entry.Name, "url", entry.URL)
	return record, true
}
