// Package address implements the filesystem addressing protocol between
// pipeline stages: signal descriptors that point at a stage's output folder,
// and pattern resolution (glob, type-qualified, name-qualified) against that
// folder.
package address

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"emotiview/internal/artifact"
)

const (
	typePrefix = "type:"
	namePrefix = "name:"
)

// Rewrite turns a type- or name-qualified pattern into the positional glob
// it addresses, using the descriptor's stream metadata. Plain globs pass
// through unchanged. Multi-stream recordings are stored as *xdf{n}* files,
// one per stream, so stream i rewrites to "*xdf{i+1}<suffix>".
func Rewrite(pattern string, sig *artifact.Signal) (string, error) {
	switch {
	case strings.HasPrefix(pattern, typePrefix):
		body := pattern[len(typePrefix):]
		token, suffix := splitToken(body)
		if sig == nil || len(sig.StreamTypes) == 0 {
			return "", artifact.AddressingErr(pattern, "type addressing requires stream_types on the signal descriptor")
		}
		for i, st := range sig.StreamTypes {
			if strings.EqualFold(st, token) {
				return positionalGlob(i, suffix), nil
			}
		}
		return "", artifact.AddressingErr(pattern, "no stream of type %q; available types: %v", token, sig.StreamTypes)
	case strings.HasPrefix(pattern, namePrefix):
		body := pattern[len(namePrefix):]
		token, suffix := splitToken(body)
		if sig == nil || len(sig.StreamNames) == 0 {
			return "", artifact.AddressingErr(pattern, "name addressing requires stream_names on the signal descriptor")
		}
		lower := strings.ToLower(token)
		for i, sn := range sig.StreamNames {
			if strings.Contains(strings.ToLower(sn), lower) {
				return positionalGlob(i, suffix), nil
			}
		}
		return "", artifact.AddressingErr(pattern, "no stream named like %q; available names: %v", token, sig.StreamNames)
	}
	return pattern, nil
}

// splitToken cuts a qualified pattern body at the first glob metacharacter:
// "EEG*.fif" -> ("EEG", "*.fif").
func splitToken(body string) (token, suffix string) {
	if i := strings.IndexAny(body, "*?["); i >= 0 {
		return body[:i], body[i:]
	}
	return body, ""
}

func positionalGlob(streamIndex int, suffix string) string {
	return fmt.Sprintf("*xdf%d%s", streamIndex+1, suffix)
}

// Resolve matches pattern against the files in folder and returns their
// absolute paths, sorted lexicographically. Qualified patterns are rewritten
// through the descriptor first. Zero matches is an addressing failure.
func Resolve(folder, pattern string, sig *artifact.Signal) ([]string, error) {
	glob, err := Rewrite(pattern, sig)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, artifact.NotFound(folder, err)
		}
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}
	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := path.Match(glob, e.Name())
		if err != nil {
			return nil, artifact.AddressingErr(pattern, "malformed glob %q: %v", glob, err)
		}
		if ok {
			abs, err := filepath.Abs(filepath.Join(folder, e.Name()))
			if err != nil {
				return nil, err
			}
			matches = append(matches, abs)
		}
	}
	if len(matches) == 0 {
		return nil, artifact.AddressingErr(pattern, "no files in %s match %q", folder, glob)
	}
	sort.Strings(matches)
	return matches, nil
}
