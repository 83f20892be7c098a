package rewrite

import (
	"bytes"
	"strconv"
)

// serializeParser walks a length-prefixed serialization payload by byte
// offset. Every production advances pos exactly past its own bytes; any
// mismatch returns ok=false and the parser never partially commits -- a
// failed parse always propagates as "not recognized", never a partial
// tree.
type serializeParser struct {
	data []byte
	pos  int
}

const maxSerializeDepth = 1000

// parseSerialized attempts to parse data as a complete serialization
// value. It requires the parser to consume every byte; a shorter
// consumption means the input was not pure serialization.
func parseSerialized(data []byte) (value, bool) {
	if !looksLikeSerialized(data) {
		return value{}, false
	}
	p := &serializeParser{data: data}
	v, ok := p.parseValue(0)
	if !ok {
		return value{}, false
	}
	if p.pos != len(p.data) {
		return value{}, false
	}
	return v, true
}

// looksLikeSerialized is a pre-filter (fast reject): it avoids running
// the full parser on plainly-not-serialization inputs.
func looksLikeSerialized(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	first := data[0]
	switch first {
	case 'a', 'b', 'c', 'd', 'i', 'n', 'o', 'r', 's', 'O', 'N', 'R':
	default:
		return false
	}
	if !bytes.ContainsAny(data, ";{") {
		return false
	}
	return true
}

func (p *serializeParser) parseValue(depth int) (value, bool) {
	if depth > maxSerializeDepth {
		return value{}, false
	}
	if p.pos >= len(p.data) {
		return value{}, false
	}

	switch p.data[p.pos] {
	case 'N':
		return p.parseNull()
	case 'b':
		return p.parseBool()
	case 'i':
		return p.parseInt()
	case 'd':
		return p.parseFloat()
	case 's':
		return p.parseString()
	case 'a':
		return p.parseSequence(depth)
	case 'O':
		return p.parseObject(depth)
	case 'r', 'R':
		return p.parseReference()
	case 'C':
		// Closure form: always refused -- reported as "not recognized".
		return value{}, false
	default:
		return value{}, false
	}
}

func (p *serializeParser) consumeByte(b byte) bool {
	if p.pos >= len(p.data) || p.data[p.pos] != b {
		return false
	}
	p.pos++
	return true
}

// readUntil scans forward from pos for the next occurrence of delim,
// returning the bytes in between (not including delim) and advancing
// pos past delim. It never looks past the end of the buffer.
func (p *serializeParser) readUntil(delim byte) ([]byte, bool) {
	idx := bytes.IndexByte(p.data[p.pos:], delim)
	if idx < 0 {
		return nil, false
	}
	out := p.data[p.pos : p.pos+idx]
	p.pos += idx + 1
	return out, true
}

func (p *serializeParser) parseNull() (value, bool) {
	if !p.consumeByte('N') || !p.consumeByte(';') {
		return value{}, false
	}
	return nullValue(), true
}

func (p *serializeParser) parseBool() (value, bool) {
	if !p.consumeByte('b') || !p.consumeByte(':') {
		return value{}, false
	}
	body, ok := p.readUntil(';')
	if !ok || len(body) != 1 {
		return value{}, false
	}
	switch body[0] {
	case '0':
		return boolValue(false), true
	case '1':
		return boolValue(true), true
	default:
		return value{}, false
	}
}

func (p *serializeParser) parseInt() (value, bool) {
	if !p.consumeByte('i') || !p.consumeByte(':') {
		return value{}, false
	}
	lit, ok := p.readUntil(';')
	if !ok || !isSignedInteger(lit) {
		return value{}, false
	}
	return intValue(string(lit)), true
}

func (p *serializeParser) parseFloat() (value, bool) {
	if !p.consumeByte('d') || !p.consumeByte(':') {
		return value{}, false
	}
	lit, ok := p.readUntil(';')
	if !ok || !isDecimal(lit) {
		return value{}, false
	}
	return floatValue(string(lit)), true
}

func (p *serializeParser) parseString() (value, bool) {
	if !p.consumeByte('s') || !p.consumeByte(':') {
		return value{}, false
	}
	lenLit, ok := p.readUntil(':')
	if !ok {
		return value{}, false
	}
	n, ok := parseByteLen(lenLit)
	if !ok || n > len(p.data)-p.pos {
		return value{}, false
	}
	if !p.consumeByte('"') {
		return value{}, false
	}
	body, ok := sliceBytes(p.data, p.pos, n)
	if !ok {
		return value{}, false
	}
	p.pos += n
	if !p.consumeByte('"') || !p.consumeByte(';') {
		return value{}, false
	}
	return stringValue(append([]byte(nil), body...)), true
}

func (p *serializeParser) parseSequence(depth int) (value, bool) {
	if !p.consumeByte('a') || !p.consumeByte(':') {
		return value{}, false
	}
	countLit, ok := p.readUntil(':')
	if !ok {
		return value{}, false
	}
	n, ok := parseNonNegativeInt(countLit)
	if !ok {
		return value{}, false
	}
	if !p.consumeByte('{') {
		return value{}, false
	}
	entries, ok := p.parsePairs(n, depth)
	if !ok {
		return value{}, false
	}
	if !p.consumeByte('}') {
		return value{}, false
	}
	return value{kind: kindSequence, entries: entries}, true
}

func (p *serializeParser) parseObject(depth int) (value, bool) {
	if !p.consumeByte('O') || !p.consumeByte(':') {
		return value{}, false
	}
	classLenLit, ok := p.readUntil(':')
	if !ok {
		return value{}, false
	}
	classLen, ok := parseByteLen(classLenLit)
	if !ok || classLen > len(p.data)-p.pos {
		return value{}, false
	}
	if !p.consumeByte('"') {
		return value{}, false
	}
	class, ok := sliceBytes(p.data, p.pos, classLen)
	if !ok {
		return value{}, false
	}
	p.pos += classLen
	if !p.consumeByte('"') || !p.consumeByte(':') {
		return value{}, false
	}
	countLit, ok := p.readUntil(':')
	if !ok {
		return value{}, false
	}
	n, ok := parseNonNegativeInt(countLit)
	if !ok {
		return value{}, false
	}
	if !p.consumeByte('{') {
		return value{}, false
	}
	entries, ok := p.parsePairs(n, depth)
	if !ok {
		return value{}, false
	}
	if !p.consumeByte('}') {
		return value{}, false
	}
	return value{
		kind:    kindObject,
		class:   append([]byte(nil), class...),
		entries: entries,
	}, true
}

// parsePairs parses 2n successive child values and folds them into n
// key-value pairs. The parser need not distinguish key productions from
// value productions semantically -- it only consumes 2n values in
// order. n comes straight from the payload (a:<n>:{...} or the trailing
// count of O:...), so it is bounded against the bytes actually left in
// the buffer before it is ever used in an allocation: every value needs
// at least one byte, so n key-value pairs can never need more than
// remaining child values, and a huge or overflowing n is rejected here
// rather than reaching make().
func (p *serializeParser) parsePairs(n int, depth int) ([]entry, bool) {
	remaining := len(p.data) - p.pos
	if n < 0 || remaining < 0 || n > remaining {
		return nil, false
	}
	vals := make([]value, 0, 2*n)
	for i := 0; i < 2*n; i++ {
		v, ok := p.parseValue(depth + 1)
		if !ok {
			return nil, false
		}
		vals = append(vals, v)
	}
	entries := make([]entry, 0, n)
	for i := 0; i < len(vals); i += 2 {
		entries = append(entries, entry{key: vals[i], value: vals[i+1]})
	}
	return entries, true
}

func (p *serializeParser) parseReference() (value, bool) {
	kindByte := p.data[p.pos]
	if !p.consumeByte(kindByte) || !p.consumeByte(':') {
		return value{}, false
	}
	lit, ok := p.readUntil(';')
	if !ok || !isNonNegativeInteger(lit) {
		return value{}, false
	}
	return referenceValue(kindByte, string(lit)), true
}

func isSignedInteger(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	i := 0
	if b[0] == '+' || b[0] == '-' {
		i = 1
	}
	if i == len(b) {
		return false
	}
	for ; i < len(b); i++ {
		if b[i] < '0' || b[i] > '9' {
			return false
		}
	}
	return true
}

func isNonNegativeInteger(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isDecimal(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	i := 0
	if b[0] == '+' || b[0] == '-' {
		i = 1
	}
	if i == len(b) {
		return false
	}
	sawDigit, sawDot := false, false
	for ; i < len(b); i++ {
		switch {
		case b[i] >= '0' && b[i] <= '9':
			sawDigit = true
		case b[i] == '.' && !sawDot:
			sawDot = true
		case (b[i] == 'e' || b[i] == 'E' || b[i] == '+' || b[i] == '-'):
			// Tolerate exponent notation; not validated digit-by-digit.
		default:
			return false
		}
	}
	return sawDigit
}

func parseByteLen(b []byte) (int, bool) {
	n, ok := parseNonNegativeInt(b)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

func parseNonNegativeInt(b []byte) (int, bool) {
	if !isNonNegativeInteger(b) {
		return 0, false
	}
	n, err := strconv.Atoi(string(b))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
