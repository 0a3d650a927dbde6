package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"confedit/internal/core/domain"
)

func decodeJSON(data []byte) (domain.Value, error) {
	if isEmpty(data) {
		return domain.Null(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	value, err := readJSONValue(dec)
	if err != nil {
		return domain.Null(), err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Null(), fmt.Errorf("unexpected data after top-level value")
	}
	return value, nil
}

// readJSONValue walks the token stream so object keys keep document order.
func readJSONValue(dec *json.Decoder) (domain.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return domain.Null(), err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			object := domain.Mapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return domain.Null(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return domain.Null(), fmt.Errorf("expected object key, got %v", keyTok)
				}
				value, err := readJSONValue(dec)
				if err != nil {
					return domain.Null(), err
				}
				object.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return domain.Null(), err
			}
			return object, nil
		case '[':
			array := domain.Sequence()
			for dec.More() {
				value, err := readJSONValue(dec)
				if err != nil {
					return domain.Null(), err
				}
				array.Append(value)
			}
			if _, err := dec.Token(); err != nil {
				return domain.Null(), err
			}
			return array, nil
		default:
			return domain.Null(), fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return domain.Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return domain.Null(), fmt.Errorf("invalid number %q: %w", t, err)
		}
		return domain.Float(f), nil
	case string:
		return domain.String(t), nil
	case bool:
		return domain.Bool(t), nil
	case nil:
		return domain.Null(), nil
	default:
		return domain.Null(), fmt.Errorf("unexpected token %v", tok)
	}
}

func encodeJSON(value domain.Value, indent int) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeJSON(&compact, value); err != nil {
		return nil, err
	}

	if indent <= 0 {
		compact.WriteByte('\n')
		return compact.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return nil, fmt.Errorf("failed to indent json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, value domain.Value) error {
	switch value.Kind() {
	case domain.NullKind:
		buf.WriteString("null")
	case domain.ScalarKind:
		return writeJSONScalar(buf, value.Scalar())
	case domain.MappingKind:
		buf.WriteByte('{')
		for i, field := range value.Fields() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONScalar(buf, field.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, field.Value); err != nil {
				return fmt.Errorf("%s: %w", field.Key, err)
			}
		}
		buf.WriteByte('}')
	case domain.SequenceKind:
		buf.WriteByte('[')
		for i, item := range value.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

func writeJSONScalar(buf *bytes.Buffer, scalar any) error {
	switch s := scalar.(type) {
	case int64:
		buf.WriteString(strconv.FormatInt(s, 10))
		return nil
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("json cannot represent %v", s)
		}
		format := byte('f')
		if abs := math.Abs(s); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
			format = 'e'
		}
		text := strconv.FormatFloat(s, format, -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			// keep integral floats distinguishable from integers
			text += ".0"
		}
		buf.WriteString(text)
		return nil
	}

	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(scalar); err != nil {
		return fmt.Errorf("failed to encode %T: %w", scalar, err)
	}
	buf.Write(bytes.TrimRight(scratch.Bytes(), "\n"))
	return nil
}
