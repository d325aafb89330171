package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Encode serializes an object to compact JSON. Properties appear in schema
// declaration order and only explicitly-set properties are emitted, so a
// decoded object layers over schema defaults. Map values are emitted with
// sorted keys to keep the encoding deterministic.
func Encode(o *Object) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, name := range o.schema.Names() {
		v, ok := o.set[name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeJSONString(&buf, name)
		buf.WriteByte(':')
		encodeValue(&buf, v)
	}
	buf.WriteByte('}')
	return buf.String()
}

func encodeValue(buf *bytes.Buffer, v Value) {
	switch v.kind {
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindString:
		writeJSONString(buf, v.s)
	case KindList:
		buf.WriteByte('[')
		for i, e := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodeValue(buf, e)
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		for i, k := range sortedKeys(v.m) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, k)
			buf.WriteByte(':')
			encodeValue(buf, v.m[k])
		}
		buf.WriteByte('}')
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// Decode parses text into an object layered on sch's defaults. Individual
// problems are collected, never thrown: unknown keys are reported as warnings
// and skipped, type mismatches are reported and the property keeps its
// default. Only malformed JSON yields an object with no properties set.
func Decode(sch *Schema, text string) (*Object, []error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return NewObject(sch), []error{fmt.Errorf("parse settings: %w", err)}
	}

	var errs []error
	set := make(map[string]Value, len(raw))
	for _, name := range sch.Names() {
		entry, ok := raw[name]
		if !ok {
			continue
		}
		p, _ := sch.Property(name)
		v, err := fromJSON(p.Type, entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("property %q: %w", name, err))
			continue
		}
		set[name] = v
	}
	for key := range raw {
		if _, ok := sch.Property(key); !ok {
			errs = append(errs, fmt.Errorf("unknown property %q ignored", key))
		}
	}
	return &Object{schema: sch, set: set}, errs
}

func fromJSON(t Type, raw any) (Value, error) {
	switch t.kind {
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, typeError(t, raw)
		}
		return Bool(b), nil
	case KindInt:
		n, ok := raw.(json.Number)
		if !ok {
			return Value{}, typeError(t, raw)
		}
		i, err := n.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("expected %s, got number %s", t, n)
		}
		return Int(i), nil
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return Value{}, typeError(t, raw)
		}
		return String(s), nil
	case KindList:
		arr, ok := raw.([]any)
		if !ok {
			return Value{}, typeError(t, raw)
		}
		elems := make([]Value, len(arr))
		for i, e := range arr {
			v, err := fromJSON(*t.elem, e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = v
		}
		return Value{kind: KindList, list: elems}, nil
	case KindMap:
		obj, ok := raw.(map[string]any)
		if !ok {
			return Value{}, typeError(t, raw)
		}
		m := make(map[string]Value, len(obj))
		for k, e := range obj {
			v, err := fromJSON(*t.elem, e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = v
		}
		return Value{kind: KindMap, m: m}, nil
	default:
		return Value{}, fmt.Errorf("unsupported type %s", t)
	}
}

func typeError(t Type, raw any) error {
	switch raw.(type) {
	case bool:
		return fmt.Errorf("expected %s, got bool", t)
	case json.Number:
		return fmt.Errorf("expected %s, got number", t)
	case string:
		return fmt.Errorf("expected %s, got string", t)
	case []any:
		return fmt.Errorf("expected %s, got list", t)
	case map[string]any:
		return fmt.Errorf("expected %s, got object", t)
	case nil:
		return fmt.Errorf("expected %s, got null", t)
	default:
		return fmt.Errorf("expected %s, got %T", t, raw)
	}
}
