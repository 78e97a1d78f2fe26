// Package declscan finds type names declared inside a namespace block of
// previously generated source.
package declscan

import (
	"regexp"
	"strings"
)

// Scanner extracts declared type names from target source.
type Scanner struct {
	// Namespace matches the opening of a namespace block. It must contain a
	// single %s placeholder for the quoted namespace name and end just before
	// the opening brace or semicolon.
	Namespace string

	// Decl matches a type declaration; submatch 1 is the type name.
	Decl *regexp.Regexp
}

var (
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// Names returns the type names declared inside the namespace block, in
// source order, without duplicates. Source without the namespace yields nil.
func (s *Scanner) Names(src []byte, namespace string) []string {
	src = blockComment.ReplaceAll(src, nil)
	src = lineComment.ReplaceAll(src, nil)

	block := s.block(src, namespace)
	if block == nil {
		return nil
	}

	var names []string
	seen := map[string]bool{}
	for _, m := range s.Decl.FindAllSubmatch(block, -1) {
		name := string(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// block returns the contents of the first namespace block with the given
// name. A namespace terminated by ';' (file scoped) extends to the end of src.
func (s *Scanner) block(src []byte, namespace string) []byte {
	re := regexp.MustCompile(strings.Replace(s.Namespace, "%s", regexp.QuoteMeta(namespace), 1) + `\s*([{;])`)
	loc := re.FindSubmatchIndex(src)
	if loc == nil {
		return nil
	}
	start := loc[3]
	if src[loc[2]] == ';' {
		return src[start:]
	}

	depth := 1
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[start:i]
			}
		}
	}
	// Unbalanced braces: take the rest of the file.
	return src[start:]
}
