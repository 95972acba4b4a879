package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/phoenix-platform/phoenixlib/textutil"
)

// maxExtractDepth bounds recursion into nested response shapes. Cyclic
// structures are a caller error; the bound keeps a pathological input from
// exhausting the stack.
const maxExtractDepth = 64

// Normalize converts a model-client return value into a plain string.
//
// It handles chat message objects (Content field), completion choice lists
// (Choices), generation batches (Generations), map payloads, sequences, and
// plain primitives, so downstream code only ever sees a string. A markdown
// code fence wrapping the entire output is stripped, exactly once, before
// the string is returned.
//
// Normalize is total: it never panics, and any failure while probing a
// malformed or partially populated value degrades to a lower-priority shape
// rule or to the empty string.
func Normalize(result any) string {
	return textutil.StripCodeFences(extractText(result, 0))
}

// extractText is the recursive shape dispatch. Cases are evaluated in
// priority order; the first matching case governs. Each probe is a narrow
// adapter that converts any failure into "no match".
func extractText(value any, depth int) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()

	if depth > maxExtractDepth || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}

	if s, ok := scalarText(value); ok {
		return s
	}

	if content, ok := probeField(value, "Content"); ok {
		return extractText(content, depth+1)
	}
	if text, ok := probeField(value, "Text"); ok {
		return extractText(text, depth+1)
	}
	if choices, ok := probeField(value, "Choices"); ok {
		return extractChoices(choices, depth+1)
	}
	if gens, ok := probeField(value, "Generations"); ok {
		return extractGenerations(gens, depth+1)
	}

	if m, ok := asStringMap(value); ok {
		return extractMap(m, depth+1)
	}

	if seq, ok := asSequence(value); ok {
		parts := make([]string, 0, len(seq))
		for _, elem := range seq {
			parts = append(parts, extractText(elem, depth+1))
		}
		return joinNonEmpty(parts)
	}

	if m, ok := dumpToMap(value); ok {
		return extractMap(m, depth+1)
	}

	return opaqueText(value)
}

// extractMap dispatches a map payload: a content key delegates, a choices
// sequence joins per-choice text, a message key delegates, and anything else
// serializes as compact JSON with values pre-extracted and keys already
// coerced to strings (deterministic: encoding/json sorts map keys; HTML
// characters stay literal).
func extractMap(m map[string]any, depth int) string {
	if content, ok := m["content"]; ok {
		return extractText(content, depth)
	}
	if choices, ok := m["choices"]; ok {
		if seq, isSeq := asSequence(choices); isSeq {
			return joinChoices(seq, depth)
		}
	}
	if msg, ok := m["message"]; ok {
		return extractText(msg, depth)
	}

	normalized := make(map[string]string, len(m))
	for k, v := range m {
		normalized[k] = extractText(v, depth)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return opaqueText(m)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// extractChoices handles a choices-like value. Non-sequence values degrade
// to plain extraction.
func extractChoices(choices any, depth int) string {
	seq, ok := asSequence(choices)
	if !ok {
		return extractText(choices, depth)
	}
	return joinChoices(seq, depth)
}

// joinChoices extracts each choice, preferring its message over its raw
// text, and joins the non-empty results with newlines.
func joinChoices(seq []any, depth int) string {
	parts := make([]string, 0, len(seq))
	for _, c := range seq {
		switch {
		case hasShape(c, "message", "Message"):
			msg, _ := probeShape(c, "message", "Message")
			parts = append(parts, extractText(msg, depth))
		case hasShape(c, "text", "Text"):
			text, _ := probeShape(c, "text", "Text")
			parts = append(parts, extractText(text, depth))
		default:
			parts = append(parts, extractText(c, depth))
		}
	}
	return joinNonEmpty(parts)
}

// extractGenerations handles a generation batch, flattening one level of
// nested lists. Each element prefers text, then content, then falls back to
// plain extraction.
func extractGenerations(gens any, depth int) string {
	seq, ok := asSequence(gens)
	if !ok {
		return extractText(gens, depth)
	}

	var parts []string
	for _, g := range seq {
		if inner, nested := asSequence(g); nested {
			for _, elem := range inner {
				parts = append(parts, generationText(elem, depth))
			}
			continue
		}
		parts = append(parts, generationText(g, depth))
	}
	return joinNonEmpty(parts)
}

func generationText(elem any, depth int) string {
	if text, ok := probeShape(elem, "text", "Text"); ok {
		return extractText(text, depth)
	}
	if content, ok := probeShape(elem, "content", "Content"); ok {
		return extractText(content, depth)
	}
	return extractText(elem, depth)
}

// probeField looks up an exported struct field, or a zero-argument
// single-result method, of the given name. Any panic during access (e.g. an
// accessor that blows up on a partially populated value) is treated as "no
// match" rather than propagated.
func probeField(value any, name string) (result any, ok bool) {
	defer func() {
		if recover() != nil {
			result, ok = nil, false
		}
	}()

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Struct {
		f := rv.FieldByName(name)
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), true
		}
	}

	m := reflect.ValueOf(value).MethodByName(name)
	if m.IsValid() {
		mt := m.Type()
		if mt.NumIn() == 0 && mt.NumOut() == 1 {
			return m.Call(nil)[0].Interface(), true
		}
	}

	return nil, false
}

// probeShape looks up a map key first, then a struct field or accessor
// method, so choice and generation elements behave uniformly whether they
// arrive as decoded JSON maps or typed client objects.
func probeShape(value any, key, field string) (any, bool) {
	if m, ok := asStringMap(value); ok {
		v, found := m[key]
		return v, found
	}
	return probeField(value, field)
}

func hasShape(value any, key, field string) bool {
	_, ok := probeShape(value, key, field)
	return ok
}

// asStringMap converts any map-kinded value into map[string]any, coercing
// keys to their textual form.
func asStringMap(value any) (result map[string]any, ok bool) {
	defer func() {
		if recover() != nil {
			result, ok = nil, false
		}
	}()

	if m, isMap := value.(map[string]any); isMap {
		return m, true
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map {
		return nil, false
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		var key string
		if k.Kind() == reflect.String {
			key = k.String()
		} else {
			key = fmt.Sprint(k.Interface())
		}
		out[key] = iter.Value().Interface()
	}
	return out, true
}

// asSequence converts any slice or array value into []any. Byte slices are
// excluded; they are treated as text.
func asSequence(value any) (result []any, ok bool) {
	defer func() {
		if recover() != nil {
			result, ok = nil, false
		}
	}()

	if vs, isSlice := value.([]any); isSlice {
		return vs, true
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// scalarText renders numbers and booleans, including named types, in their
// canonical textual form.
func scalarText(value any) (string, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), true
	}
	return "", false
}

// dumpToMap is the structured-object fallback: round-trip through JSON into
// a plain map, dropping null fields, so unrecognized client types still
// yield their payload rather than an opaque representation.
func dumpToMap(value any) (result map[string]any, ok bool) {
	defer func() {
		if recover() != nil {
			result, ok = nil, false
		}
	}()

	data, err := json.Marshal(value)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return stripNulls(m), true
}

func stripNulls(m map[string]any) map[string]any {
	for k, v := range m {
		switch inner := v.(type) {
		case nil:
			delete(m, k)
		case map[string]any:
			m[k] = stripNulls(inner)
		}
	}
	return m
}

// opaqueText is the last-resort representation. A panicking String or Error
// method degrades to the empty string. fmt recovers such panics itself and
// embeds the panic message in its output, so the methods are called directly
// under the recover guard, and fmt's panic marker is rejected for values
// where the method sits on a nested field.
func opaqueText(value any) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()

	switch v := value.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	s := fmt.Sprint(value)
	if strings.Contains(s, "(PANIC=") {
		return ""
	}
	return s
}

func joinNonEmpty(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
