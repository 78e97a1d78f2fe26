// Package codegen builds the target-neutral proxy model from hub metadata.
//
// Build drives a single pass: it resolves every operation parameter through a
// Resolver, which declares classes, enums and arrays into a Registry the
// caller seeds with names found in earlier output. The result is a
// model.ApiModel that a target emitter serializes.
package codegen

import "github.com/broady/hub/hubgen/model"

// Runtime maps neutral types onto a target's built-in types.
type Runtime interface {
	// Builtin returns the target type for a neutral primitive name
	// (see ir.Primitive*). It reports false for names the target cannot represent.
	Builtin(primitive string) (model.Builtin, bool)

	// Connection is the type of the externally supplied connection.
	Connection() model.Builtin

	// Subscription is the type returned when registering a client handler.
	Subscription() model.Builtin

	// Async is the return type of a server-received operation.
	Async() model.Builtin
}
