// Package walk discovers scannable text files under a local directory
// tree and decodes them into buffers the scanner can consume.
//
// Grounded on the teacher's internal/guidelines/loader.go
// discoverGuidelinePaths/listMarkdownFiles: filepath.WalkDir plus a
// byte-size cap per file, generalized from "collect markdown guideline
// files" to "collect every plausibly-text, not-oversized file".
package walk

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"
)

// Options configures Walk.
type Options struct {
	// MaxFileBytes skips any file larger than this. Zero means
	// DefaultMaxFileBytes.
	MaxFileBytes int64

	// SkipDirs names directories (by base name, e.g. ".git", "node_modules")
	// never to descend into.
	SkipDirs map[string]bool
}

// DefaultMaxFileBytes is the size cap applied when Options.MaxFileBytes
// is unset: files larger than this are almost certainly not hand-edited
// source or config and not worth the scanner's attention.
const DefaultMaxFileBytes = 5 * 1024 * 1024

// DefaultSkipDirs are directories never worth descending into: version
// control metadata and dependency trees neither contain first-party
// secrets nor are meant to be edited by hand.
func DefaultSkipDirs() map[string]bool {
	return map[string]bool{
		".git":         true,
		"node_modules": true,
		"vendor":       true,
		".venv":        true,
	}
}

// File is one discovered, decoded text file.
type File struct {
	// Path is the file's path relative to the walked root, using forward
	// slashes, suitable as a Candidate's opaque file-path label.
	Path string
	Text string
}

// Walk returns every decodable, within-size-cap text file found under
// root, sorted by path for deterministic scan ordering.
func Walk(root string, opts Options) ([]File, []string) {
	maxBytes := opts.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	skipDirs := opts.SkipDirs
	if skipDirs == nil {
		skipDirs = DefaultSkipDirs()
	}

	var files []File
	var errs []string

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err.Error())
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			errs = append(errs, err.Error())
			return nil
		}
		if info.Size() > maxBytes {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err.Error())
			return nil
		}
		if looksBinary(data) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		files = append(files, File{Path: filepath.ToSlash(rel), Text: decodeUTF8Prefix(data)})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, errs
}

// looksBinary applies the conventional NUL-byte heuristic within the
// first 8000 bytes, matching the scanner's stated non-responsibility for
// binary detection (spec.md §4.3): callers, not the scanner, must not
// invoke it on binary buffers.
func looksBinary(data []byte) bool {
	probe := data
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	return bytes.IndexByte(probe, 0) != -1
}

// decodeUTF8Prefix returns the longest valid UTF-8 prefix of data as a
// string, matching spec.md §4.3's edge case for invalid text: scan the
// decodable prefix, silently drop the rest.
func decodeUTF8Prefix(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	valid := data
	for len(valid) > 0 && !utf8.Valid(valid) {
		valid = valid[:len(valid)-1]
	}
	return string(valid)
}
