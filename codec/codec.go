// Package codec turns cached values into bytes and back.
//
// The cache is value-agnostic: whatever the caller stores is encoded once on
// write, the encoded length is what memory accounting charges, and reads decode
// into a destination the caller provides.
package codec

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownCodec is returned by New for an unsupported name.
var ErrUnknownCodec = errors.New("unknown codec")

// Codec encodes and decodes cached values.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, dst any) error
}

// New returns the codec registered under name ("json" or "msgpack").
func New(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON{}, nil
	case "msgpack":
		return Msgpack{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// JSON is the default codec. Sizes match what the upstream API returns closely.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, dst any) error { return json.Unmarshal(data, dst) }

// Msgpack trades readability for smaller entries, so more data fits the budget.
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (Msgpack) Unmarshal(data []byte, dst any) error { return msgpack.Unmarshal(data, dst) }
