// Package utils holds the small path and ingest helpers shared by the
// CLI surfaces.
package utils

import (
	"os"
	"regexp"
	"strings"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/text/unicode/norm"
)

// ExpandPath expands a leading tilde and all environment variables in
// a user-supplied path.
func ExpandPath(path string) string {
	s, err := homedir.Expand(path)
	if err == nil {
		return os.ExpandEnv(s)
	}
	return os.ExpandEnv(path)
}

var frontmatterFence = regexp.MustCompile(`(?m)^---\r?\n(\s*\r?\n)?`)

// StripFrontmatter removes a leading YAML frontmatter block so metadata
// headers are never read aloud or paginated. Text without one passes
// through unchanged.
func StripFrontmatter(text string) string {
	fences := frontmatterFence.FindAllStringIndex(text, 2)
	if len(fences) > 1 && fences[0][0] == 0 {
		return text[fences[1][1]:]
	}
	return text
}

// NormalizeText prepares raw book text for segmentation. The UTF-8 BOM
// goes, CRLF and bare CR line endings become LF, and the result is NFC
// so rune counts stay stable across differently encoded editions of
// the same book.
func NormalizeText(text string) string {
	text = strings.TrimPrefix(text, "﻿")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}

var textExtensions = []string{".txt", ".text", ".md", ".markdown", ".mdown", ".mkd"}

// IsTextFile reports whether path names a file lantern reads as a book.
func IsTextFile(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range textExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
