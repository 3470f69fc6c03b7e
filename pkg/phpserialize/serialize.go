// Package phpserialize produces the PHP serialize() encoding that several
// SendPulse endpoints expect inside JSON string fields.
//
// Encoding rules:
//
//	nil                 N;
//	bool                b:0; / b:1;
//	integers            i:<n>;
//	floats              i:<n>; when integral, d:<f>; otherwise
//	string, []byte      s:<byte length>:"<value>";
//	slice, array        a:<n>:{i:0;<v>i:1;<v>...}
//	map                 a:<n>:{<k><v>...} with keys sorted
//	struct              a:<n>:{s:<len>:"<field>";<v>...} in declaration order
//
// Nil slices and maps encode as an empty array. String keys made only of
// digits are written as integer keys, as PHP itself does. Struct field names
// come from the `php` tag, falling back to the `json` tag; both support
// "-" and ",omitempty".
package phpserialize

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// UnsupportedTypeError is returned for values PHP cannot represent, such as
// functions and channels.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "phpserialize: unsupported type: " + e.Type.String()
}

// Marshal returns the serialize() encoding of v.
func Marshal(v interface{}) (string, error) {
	var b strings.Builder
	if err := encode(&b, reflect.ValueOf(v)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func encode(b *strings.Builder, v reflect.Value) error {
	if !v.IsValid() {
		b.WriteString("N;")
		return nil
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			b.WriteString("N;")
			return nil
		}
		return encode(b, v.Elem())
	case reflect.Bool:
		if v.Bool() {
			b.WriteString("b:1;")
		} else {
			b.WriteString("b:0;")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeInt(b, v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString("i:")
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
		b.WriteByte(';')
	case reflect.Float32, reflect.Float64:
		writeFloat(b, v.Float())
	case reflect.String:
		writeString(b, v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			writeString(b, string(v.Bytes()))
			return nil
		}
		return encodeList(b, v)
	case reflect.Array:
		return encodeList(b, v)
	case reflect.Map:
		return encodeMap(b, v)
	case reflect.Struct:
		return encodeStruct(b, v)
	default:
		return &UnsupportedTypeError{Type: v.Type()}
	}
	return nil
}

func writeInt(b *strings.Builder, n int64) {
	b.WriteString("i:")
	b.WriteString(strconv.FormatInt(n, 10))
	b.WriteByte(';')
}

func writeFloat(b *strings.Builder, f float64) {
	switch {
	case math.IsNaN(f):
		b.WriteString("d:NAN;")
	case math.IsInf(f, 1):
		b.WriteString("d:INF;")
	case math.IsInf(f, -1):
		b.WriteString("d:-INF;")
	case f == math.Trunc(f):
		b.WriteString("i:")
		b.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
		b.WriteByte(';')
	default:
		b.WriteString("d:")
		b.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
		b.WriteByte(';')
	}
}

// writeString uses the UTF-8 byte length, which is what PHP's strlen
// reports for the same string.
func writeString(b *strings.Builder, s string) {
	b.WriteString("s:")
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteString(`:"`)
	b.WriteString(s)
	b.WriteString(`";`)
}

// writeKey writes a string key, turning digit-only keys into integers.
func writeKey(b *strings.Builder, k string) {
	if isDigits(k) {
		if n, err := strconv.ParseInt(k, 10, 64); err == nil {
			writeInt(b, n)
			return
		}
	}
	writeString(b, k)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func encodeList(b *strings.Builder, v reflect.Value) error {
	var body strings.Builder
	for i := 0; i < v.Len(); i++ {
		writeInt(&body, int64(i))
		if err := encode(&body, v.Index(i)); err != nil {
			return err
		}
	}
	writeArray(b, v.Len(), body.String())
	return nil
}

func encodeMap(b *strings.Builder, v reflect.Value) error {
	keyKind := v.Type().Key().Kind()

	type entry struct {
		str string
		num int64
		val reflect.Value
	}
	entries := make([]entry, 0, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key()
		switch keyKind {
		case reflect.String:
			entries = append(entries, entry{str: k.String(), val: iter.Value()})
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			entries = append(entries, entry{num: k.Int(), val: iter.Value()})
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			entries = append(entries, entry{num: int64(k.Uint()), val: iter.Value()})
		default:
			return &UnsupportedTypeError{Type: v.Type()}
		}
	}

	if keyKind == reflect.String {
		sort.Slice(entries, func(i, j int) bool { return entries[i].str < entries[j].str })
	} else {
		sort.Slice(entries, func(i, j int) bool { return entries[i].num < entries[j].num })
	}

	var body strings.Builder
	for _, e := range entries {
		if keyKind == reflect.String {
			writeKey(&body, e.str)
		} else {
			writeInt(&body, e.num)
		}
		if err := encode(&body, e.val); err != nil {
			return err
		}
	}
	writeArray(b, len(entries), body.String())
	return nil
}

func encodeStruct(b *strings.Builder, v reflect.Value) error {
	t := v.Type()

	var body strings.Builder
	count := 0
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := fieldName(field)
		if skip {
			continue
		}
		fv := v.Field(i)
		if omitEmpty && isEmptyValue(fv) {
			continue
		}

		writeKey(&body, name)
		if err := encode(&body, fv); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		count++
	}
	writeArray(b, count, body.String())
	return nil
}

func writeArray(b *strings.Builder, count int, body string) {
	b.WriteString("a:")
	b.WriteString(strconv.Itoa(count))
	b.WriteString(":{")
	b.WriteString(body)
	b.WriteByte('}')
}

func fieldName(f reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag, ok := f.Tag.Lookup("php")
	if !ok {
		tag, ok = f.Tag.Lookup("json")
	}
	if !ok {
		return f.Name, false, false
	}
	if tag == "-" {
		return "", false, true
	}

	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
