// Package store persists calculator programs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/el2nil/calculator"
)

// Codec converts programs to and from bytes.
type Codec interface {
	Encode(p calculator.Program) ([]byte, error)
	Decode(b []byte) (calculator.Program, error)
}

// JSON encodes a program as a JSON array of numbers and strings.
type JSON struct{}

func (JSON) Encode(p calculator.Program) ([]byte, error) {
	return json.Marshal(p)
}

func (JSON) Decode(b []byte) (calculator.Program, error) {
	var p calculator.Program
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// YAML encodes a program as a YAML sequence of numbers and strings.
type YAML struct{}

func (YAML) Encode(p calculator.Program) ([]byte, error) {
	return yaml.Marshal(p)
}

func (YAML) Decode(b []byte) (calculator.Program, error) {
	var p calculator.Program
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// Proto encodes a program as a snappy-compressed google.protobuf.ListValue
// whose elements are number and string values.
type Proto struct{}

func (Proto) Encode(p calculator.Program) ([]byte, error) {
	l, err := structpb.NewList(p.Values())
	if err != nil {
		return nil, err
	}
	data, err := proto.Marshal(l)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

func (Proto) Decode(b []byte) (calculator.Program, error) {
	data, err := snappy.Decode(nil, b)
	if err != nil {
		return nil, err
	}
	var l structpb.ListValue
	if err := proto.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	p := make(calculator.Program, 0, len(l.GetValues()))
	for _, v := range l.GetValues() {
		switch k := v.GetKind().(type) {
		case *structpb.Value_NumberValue:
			p = append(p, calculator.Number(k.NumberValue))
		case *structpb.Value_StringValue:
			p = append(p, calculator.Symbol(k.StringValue))
		default:
			return nil, &calculator.TokenError{Text: fmt.Sprint(v.AsInterface())}
		}
	}
	return p, nil
}

// ErrUnknownFormat is returned for files whose extension names no codec.
var ErrUnknownFormat = errors.New("unknown program file format")

// CodecFor chooses a codec by the extension of a file name: .json, .yaml or
// .yml, or .pb.
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSON{}, nil
	case ".yaml", ".yml":
		return YAML{}, nil
	case ".pb":
		return Proto{}, nil
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
	}
}

// WriteFile writes p to a file in the format named by its extension.
func WriteFile(name string, p calculator.Program) error {
	c, err := CodecFor(name)
	if err != nil {
		return err
	}
	b, err := c.Encode(p)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return os.WriteFile(name, b, 0o644)
}

// ReadFile reads a program from a file in the format named by its
// extension.
func ReadFile(name string) (calculator.Program, error) {
	c, err := CodecFor(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	p, err := c.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return p, nil
}
