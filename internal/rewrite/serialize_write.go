package rewrite

import "bytes"

// rewriteSerialized rewrites every embedded string in v, replacing
// search with replace, and re-emits the grammar with corrected length
// prefixes. Only s:L:"..."; productions are substituted; everything
// else (including r:/R: back-references) is re-emitted byte-identically.
func rewriteSerialized(v value, search, replace []byte) []byte {
	var buf bytes.Buffer
	writeSerialized(&buf, v, search, replace)
	return buf.Bytes()
}

func writeSerialized(buf *bytes.Buffer, v value, search, replace []byte) {
	switch v.kind {
	case kindNull:
		buf.WriteString("N;")
	case kindBool:
		buf.WriteString("b:")
		if v.boolVal {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
		buf.WriteByte(';')
	case kindInt:
		buf.WriteString("i:")
		buf.WriteString(v.intVal)
		buf.WriteByte(';')
	case kindFloat:
		buf.WriteString("d:")
		buf.WriteString(v.floatVal)
		buf.WriteByte(';')
	case kindString:
		writeSerializedString(buf, v.strVal, search, replace)
	case kindSequence:
		buf.WriteString("a:")
		buf.WriteString(formatLen(len(v.entries)))
		buf.WriteString(":{")
		for _, e := range v.entries {
			writeSerialized(buf, e.key, search, replace)
			writeSerialized(buf, e.value, search, replace)
		}
		buf.WriteByte('}')
	case kindObject:
		buf.WriteString("O:")
		buf.WriteString(formatLen(byteLen(v.class)))
		buf.WriteString(":\"")
		buf.Write(v.class)
		buf.WriteString("\":")
		buf.WriteString(formatLen(len(v.entries)))
		buf.WriteString(":{")
		for _, e := range v.entries {
			writeSerialized(buf, e.key, search, replace)
			writeSerialized(buf, e.value, search, replace)
		}
		buf.WriteByte('}')
	case kindReference:
		buf.WriteByte(v.refKind)
		buf.WriteByte(':')
		buf.WriteString(v.refVal)
		buf.WriteByte(';')
	}
}

func writeSerializedString(buf *bytes.Buffer, raw, search, replace []byte) {
	rewritten := raw
	if len(search) > 0 {
		rewritten = bytes.ReplaceAll(raw, search, replace)
	}
	buf.WriteString("s:")
	buf.WriteString(formatLen(byteLen(rewritten)))
	buf.WriteString(":\"")
	buf.Write(rewritten)
	buf.WriteString("\";")
}
