// Package pbquery is an XPath-like query engine over length-delimited,
// tag-length-value wire records.
//
// Given a [Plan] compiled against a [MessageDescriptor] and an encoded
// message buffer, [Plan.EvaluateAll] returns the raw byte slices of every
// field in the buffer that matches the plan's path and filters, without
// decoding the buffer into an in-memory object graph.
//
// # Support status
//
// This package implements the core of the query grammar described in its
// design: path traversal, equality and inequality filters, and the `@`
// self-reference. The following are recognized but deliberately not
// evaluated:
//
//   - Regex filters (`=~`) and list-membership filters (`in`): [Compile]
//     rejects them with an UnsupportedOperator [CompileError].
//   - Positional index filters (`[N]`): these compile, and evaluation
//     reports an [UnsupportedError] when it reaches one.
//
// Message encoding, the deprecated group wire type, and big-endian wire
// reads are out of scope.
package pbquery
