// Package wiretest builds small tag/length/value buffers for tests,
// without pulling in a full protobuf encoder (this module never
// encodes messages, only reads them).
//
// github.com/protocolbuffers/protoscope generates fixtures like these
// from a human-readable assembly-like text format, but its exact Go API
// could not be confirmed offline in this environment, and getting a
// fixture-generation helper wrong produces tests that silently exercise
// the wrong bytes; this package instead hand-rolls the handful of wire
// primitives it needs (varint tags, fixed32/fixed64, length-prefixed),
// which is a small, fully self-contained surface to get right. See
// DESIGN.md.
package wiretest

import "encoding/binary"

// Builder accumulates a tag/length/value buffer field by field.
type Builder struct {
	buf []byte
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// Bytes returns the buffer built so far.
func (b *Builder) Bytes() []byte { return b.buf }

func putTag(buf []byte, fieldNumber uint32, wireType uint8) []byte {
	return putVarint(buf, uint64(fieldNumber)<<3|uint64(wireType))
}

func putVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// Varint appends a VARINT-wire-type field.
func (b *Builder) Varint(fieldNumber uint32, v uint64) *Builder {
	b.buf = putTag(b.buf, fieldNumber, 0)
	b.buf = putVarint(b.buf, v)
	return b
}

// Fixed32 appends a FIXED32-wire-type field, encoded little-endian.
func (b *Builder) Fixed32(fieldNumber uint32, v uint32) *Builder {
	b.buf = putTag(b.buf, fieldNumber, 5)
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

// Fixed64 appends a FIXED64-wire-type field, encoded little-endian.
func (b *Builder) Fixed64(fieldNumber uint32, v uint64) *Builder {
	b.buf = putTag(b.buf, fieldNumber, 1)
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

// BytesField appends a LENGTH_PREFIXED-wire-type field holding raw bytes
// (a string, bytes, or submessage payload the caller has already
// encoded).
func (b *Builder) BytesField(fieldNumber uint32, payload []byte) *Builder {
	b.buf = putTag(b.buf, fieldNumber, 2)
	b.buf = putVarint(b.buf, uint64(len(payload)))
	b.buf = append(b.buf, payload...)
	return b
}

// Str is a convenience wrapper over BytesField for string-valued
// fields.
func (b *Builder) Str(fieldNumber uint32, s string) *Builder {
	return b.BytesField(fieldNumber, []byte(s))
}

// Message appends a length-prefixed submessage built by a nested
// Builder, e.g. b.Message(1, New().Str(1, "Moby").Varint(2, 1851)).
func (b *Builder) Message(fieldNumber uint32, nested *Builder) *Builder {
	return b.BytesField(fieldNumber, nested.Bytes())
}
