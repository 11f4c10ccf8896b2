package main

import (
	"fmt"

	"github.com/spf13/afero"
)

// `process_entry` behind a recover boundary: a panic while processing a
// single entry is logged and treated as a skip, it never aborts the batch.
func process_one(cfg Config, entry CatalogueEntry, stats StatsIndex, file_extension string) (record *Record, ok bool) {
	defer func() {
		r := recover()
		if r != nil {
			cfg.Log.Error("panic while processing entry, skipping", "entry", entry.Name, "panic", r)
			record, ok = nil, false
		}
	}()
	return process_entry(cfg, entry, stats, file_extension)
}

// reads the catalogue at `catalogue_path`, processes every entry in document
// order and writes the aggregated download manifest to `output_path` in a
// single final pass. individual entry failures are skipped; only an
// unreadable catalogue or an unwritable manifest fail the batch.
func run_batch(cfg Config, fs afero.Fs, catalogue_path string, output_path string, file_extension string, label string) error {
	raw, err := afero.ReadFile(fs, catalogue_path)
	if err != nil {
		return fmt.Errorf("failed to read catalogue '%s': %w", catalogue_path, err)
	}
	entry_list, err := parse_document(string(raw), catalogue_path)
	if err != nil {
		return fmt.Errorf("failed to parse catalogue '%s': %w", catalogue_path, err)
	}

	stats := fetch_stats(cfg)

	record_list := []*Record{}
	for _, section := range entry_list {
		entry := CatalogueEntry{Name: section.Name, URL: section.Get("external")}
		record, ok := process_one(cfg, entry, stats, file_extension)
		if ok {
			record_list = append(record_list, record)
		}
	}

	document := serialize_records(record_list, label)
	err = afero.WriteFile(fs, output_path, []byte(document), 0644)
	if err != nil {
		return fmt.Errorf("failed to write manifest '%s': %w", output_path, err)
	}
	cfg.Log.Info("manifest written", "path", output_path, "records", len(record_list), "entries", len(entry_list))
	return nil
}
