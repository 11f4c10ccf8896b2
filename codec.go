package main

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// one section of a manifest document: a name plus its fields in insertion order.
type Record struct {
	Name   string
	keys   []string
	fields map[string]string
}

func NewRecord(name string) *Record {
	return &Record{Name: name, fields: map[string]string{}}
}

// adds or replaces a field. keys stay unique, insertion order is preserved.
func (r *Record) Set(key string, val string) {
	_, present := r.fields[key]
	if !present {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = val
}

func (r *Record) Get(key string) string {
	return r.fields[key]
}

func (r *Record) Keys() []string {
	return r.keys
}

// a document that could not be parsed, attributed to the entry being processed.
type MalformedDocumentError struct {
	Name string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document for '%s': %v", e.Name, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// values may legitimately contain '#', ';' and '%', keep them intact.
var ini_load_options = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// parses a section-based key=value document into records.
// key case and section order are preserved and no value interpolation happens.
// a parse failure is retried once with any leading byte-order mark stripped,
// then reported as a `MalformedDocumentError` attributed to `name`.
func parse_document(text string, name string) ([]*Record, error) {
	file, err := ini.LoadSources(ini_load_options, []byte(text))
	if err != nil {
		stripped, bom_err := elide_bom([]byte(text))
		if bom_err == nil {
			file, err = ini.LoadSources(ini_load_options, stripped)
		}
		if err != nil {
			return nil, &MalformedDocumentError{Name: name, Err: err}
		}
	}

	record_list := []*Record{}
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			if len(section.Keys()) > 0 {
				return nil, &MalformedDocumentError{Name: name, Err: errors.New("keys found before any section header")}
			}
			continue
		}
		record := NewRecord(section.Name())
		for _, key := range section.Keys() {
			record.Set(key.Name(), key.Value())
		}
		record_list = append(record_list, record)
	}
	return record_list, nil
}

// renders records as a download manifest: a count header comment, then one
// `[name]` section per record with its `key=value` lines in insertion order,
// each section followed by a blank line.
func serialize_records(record_list []*Record, label string) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "# %d %s\n", len(record_list), label)
	for _, record := range record_list {
		fmt.Fprintf(&buf, "[%s]\n", record.Name)
		for _, key := range record.Keys() {
			fmt.Fprintf(&buf, "%s=%s\n", key, record.Get(key))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
