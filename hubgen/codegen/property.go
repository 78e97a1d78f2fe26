package codegen

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/broady/hub/hubgen/model"
)

// ErrEmptyName is returned when a property or parameter has no name.
var ErrEmptyName = errors.New("empty name")

// BuildProperty returns a get/set accessor named after name with its first
// letter upper-cased, backed by a field named "_" + name with its first
// letter lower-cased.
func BuildProperty(name string, typ model.TypeRef, vis model.Visibility) (model.Property, error) {
	if name == "" {
		return model.Property{}, ErrEmptyName
	}
	return model.Property{
		Name:       UpperFirst(name),
		Field:      "_" + LowerFirst(name),
		Type:       typ,
		Visibility: vis,
	}, nil
}

// UpperFirst returns s with its first rune upper-cased.
func UpperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// LowerFirst returns s with its first rune lower-cased.
func LowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
