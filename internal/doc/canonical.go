package doc

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// DomainHeader is the domain prefix for header content ids.
// The version suffix allows a future change of canonical form.
const DomainHeader = "orso/header/v1"

// MarshalCanonical produces RFC 8785 style canonical JSON for v.
//
// Differences from encoding/json:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Time renders as an RFC 3339 string
//  5. Non-finite floats are rejected
func MarshalCanonical(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentID returns the hex SHA-256 of v's canonical JSON, domain separated:
// SHA256(DomainHeader + 0x00 + canonical).
func ContentID(v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("content id: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainHeader))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func writeCanonical(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite float in canonical JSON: %v", f)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case String:
		return writeCanonicalString(buf, string(val))
	case Time:
		return writeCanonicalString(buf, val.Format(time.RFC3339Nano))
	case List:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case *Map:
		keys := val.Keys()
		slices.SortFunc(keys, compareKeysRFC8785)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			elem, _ := val.Get(k)
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("object[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

// writeCanonicalString writes s NFC normalized, escaping only what RFC 8785
// requires: control characters, backslash and quote.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)

	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return err
	}
	out := bytes.TrimSuffix(tmp.Bytes(), []byte("\n"))

	// encoding/json escapes U+2028 and U+2029 for JavaScript; RFC 8785 does not.
	if bytes.Contains(out, []byte(`\u202`)) {
		out = unescapeLineSeparators(out)
	}
	buf.Write(out)
	return nil
}

// unescapeLineSeparators turns \u2028 and \u2029 escapes back into literal characters
// unless the backslash is itself escaped (an odd run of backslashes precedes u).
func unescapeLineSeparators(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && i+5 < len(data) && data[i+1] == 'u' &&
			data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			run := 0
			for j := len(out) - 1; j >= 0 && out[j] == '\\'; j-- {
				run++
			}
			if run%2 == 0 {
				if data[i+5] == '8' {
					out = append(out, "\u2028"...)
				} else {
					out = append(out, "\u2029"...)
				}
				i += 5
				continue
			}
		}
		out = append(out, data[i])
	}
	return out
}

// compareKeysRFC8785 compares strings by UTF-16 code units as RFC 8785 requires.
// Go's string comparison uses UTF-8 bytes, which orders some keys differently.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}
