// general purpose utilities
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// cannot continue, exit immediately without a stacktrace.
// just use `panic` if you do need a stracktrace.
func fatal() {
	fmt.Printf("cannot continue, ") // "cannot continue, exit status 1"
	os.Exit(1)
}

// when `b` is true, log error `msg` and die quietly.
func die(b bool, msg string) {
	if b {
		slog.Error(msg)
		fatal()
	}
}

// returns `true` if tests are being run.
func is_testing() bool {
	// https://stackoverflow.com/questions/14249217/how-do-i-know-im-running-within-go-test
	return strings.HasSuffix(os.Args[0], ".test")
}

// detect if a string has a byte-order mark,
// removing it and returning the remaining bytes if so.
// utf-16 content is transparently decoded to utf-8 along the way.
// - https://stackoverflow.com/questions/21371673/reading-files-with-a-bom-in-go
func elide_bom(b []byte) ([]byte, error) {
	rdr := transform.NewReader(bytes.NewReader(b), unicode.BOMOverride(transform.Nop))
	return io.ReadAll(rdr)
}

// `strings.HasSuffix`, ignoring case.
func has_suffix_fold(s string, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
}
