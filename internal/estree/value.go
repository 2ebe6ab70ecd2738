// Package estree provides a generic, order-preserving JSON value tree used
// to hold sub-ASTs returned by the (external, black-box) script and style
// sub-parsers, plus the field-mask canonicalizer (spec §4.7) that turns
// those sub-parser-shaped trees into ESTree-compatible ones.
//
// A plain map[string]any loses the reference's object-member order the
// moment you decode into it, which is fatal for spec §4.8 ("Keys are
// emitted in a fixed per-node-type order... downstream comparison is
// textual"). Value instead keeps object members in a slice, decoded and
// re-encoded through jsontext's token stream, which is the one library in
// the retrieved corpus able to do that for an arbitrary, not-statically-
// typed tree.
package estree

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Member is one key/value pair of an object-kind Value, in source order.
type Member struct {
	Name  string
	Value Value
}

// Value is a dynamically-typed, order-preserving JSON value.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  float64
	Str     string
	Items   []Value
	Members []Member
}

func Null() Value                 { return Value{Kind: KindNull} }
func NewBool(b bool) Value        { return Value{Kind: KindBool, Bool: b} }
func NewNumber(n float64) Value   { return Value{Kind: KindNumber, Number: n} }
func NewString(s string) Value    { return Value{Kind: KindString, Str: s} }
func NewArray(items ...Value) Value {
	return Value{Kind: KindArray, Items: items}
}
func NewObject(members ...Member) Value {
	return Value{Kind: KindObject, Members: members}
}

// Get returns the named member of an object Value.
func (v Value) Get(name string) (Value, bool) {
	for _, m := range v.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Set assigns or appends the named member of an object Value, preserving
// the position of an existing member.
func (v *Value) Set(name string, val Value) {
	for i, m := range v.Members {
		if m.Name == name {
			v.Members[i].Value = val
			return
		}
	}
	v.Members = append(v.Members, Member{Name: name, Value: val})
}

// Delete removes the named member, if present.
func (v *Value) Delete(name string) {
	out := v.Members[:0]
	for _, m := range v.Members {
		if m.Name != name {
			out = append(out, m)
		}
	}
	v.Members = out
}

// TypeName returns the value of the "type" member, or "" if absent or not
// an object.
func (v Value) TypeName() string {
	t, ok := v.Get("type")
	if !ok || t.Kind != KindString {
		return ""
	}
	return t.Str
}

// IntField reads an integer-valued member such as "start"/"end".
func (v Value) IntField(name string) int {
	n, ok := v.Get(name)
	if !ok {
		return 0
	}
	return int(n.Number)
}

// Decode parses a JSON document into an order-preserving Value tree.
func Decode(data []byte) (Value, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	return decodeValue(dec)
}

func decodeValue(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return Value{}, err
	}
	switch tok.Kind() {
	case 'n':
		return Null(), nil
	case 'f', 't':
		return NewBool(tok.Bool()), nil
	case '"':
		return NewString(tok.String()), nil
	case '0':
		return NewNumber(tok.Float()), nil
	case '[':
		var items []Value
		for dec.PeekKind() != ']' {
			v, err := decodeValue(dec)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindArray, Items: items}, nil
	case '{':
		var members []Member
		for dec.PeekKind() != '}' {
			nameTok, err := dec.ReadToken()
			if err != nil {
				return Value{}, err
			}
			v, err := decodeValue(dec)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Name: nameTok.String(), Value: v})
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindObject, Members: members}, nil
	default:
		return Value{}, fmt.Errorf("estree: unexpected token kind %q", tok.Kind())
	}
}

// Encode writes v to w as JSON, preserving member order exactly as stored.
func Encode(w io.Writer, v Value) error {
	enc := jsontext.NewEncoder(w)
	if err := encodeValue(enc, v); err != nil {
		return err
	}
	return nil
}

// EncodeIndent writes v to w as JSON using indent for nesting, preserving
// member order exactly as stored. internal/printer uses this with a tab
// indent to satisfy the serializer's formatting requirement (spec §4.8).
func EncodeIndent(w io.Writer, v Value, indent string) error {
	enc := jsontext.NewEncoder(w, jsontext.WithIndent(indent))
	if err := encodeValue(enc, v); err != nil {
		return err
	}
	return nil
}

func encodeValue(enc *jsontext.Encoder, v Value) error {
	switch v.Kind {
	case KindNull:
		return enc.WriteToken(jsontext.Null)
	case KindBool:
		return enc.WriteToken(jsontext.Bool(v.Bool))
	case KindNumber:
		return enc.WriteToken(jsontext.Float(v.Number))
	case KindString:
		return enc.WriteToken(jsontext.String(v.Str))
	case KindArray:
		if err := enc.WriteToken(jsontext.ArrayStart); err != nil {
			return err
		}
		for _, item := range v.Items {
			if err := encodeValue(enc, item); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.ArrayEnd)
	case KindObject:
		if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
			return err
		}
		for _, m := range v.Members {
			if err := enc.WriteToken(jsontext.String(m.Name)); err != nil {
				return err
			}
			if err := encodeValue(enc, m.Value); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.ObjectEnd)
	default:
		return fmt.Errorf("estree: unknown value kind %d", v.Kind)
	}
}
