package codec_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/krisalay/league-cache/codec"
)

type standing struct {
	TeamID string  `json:"team_id" msgpack:"team_id"`
	Wins   int     `json:"wins" msgpack:"wins"`
	Points float64 `json:"points_for" msgpack:"points_for"`
}

func TestCodecsDecodeWhatTheyEncode(t *testing.T) {
	in := []standing{
		{TeamID: "1", Wins: 6, Points: 1150.5},
		{TeamID: "2", Wins: 5, Points: 1080.3},
	}

	for _, name := range []string{"json", "msgpack"} {
		t.Run(name, func(t *testing.T) {
			c, err := codec.New(name)
			if err != nil {
				t.Fatalf("New(%q) error = %v", name, err)
			}
			if c.Name() != name {
				t.Fatalf("Name() = %q, want %q", c.Name(), name)
			}

			data, err := c.Marshal(in)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}

			var out []standing
			if err := c.Unmarshal(data, &out); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if diff := cmp.Diff(in, out); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMsgpackIsSmallerThanJSON(t *testing.T) {
	v := map[string]any{"data": strings.Repeat("x", 100), "id": 7, "name": "Team Alpha"}

	j, err := codec.JSON{}.Marshal(v)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	m, err := codec.Msgpack{}.Marshal(v)
	if err != nil {
		t.Fatalf("msgpack: %v", err)
	}
	if len(m) >= len(j) {
		t.Fatalf("expected msgpack (%d bytes) smaller than json (%d bytes)", len(m), len(j))
	}
}

func TestJSONRejectsUnsupportedValues(t *testing.T) {
	if _, err := (codec.JSON{}).Marshal(make(chan int)); err == nil {
		t.Fatalf("expected error encoding a channel")
	}
}

func TestNewUnknown(t *testing.T) {
	if _, err := codec.New("xml"); !errors.Is(err, codec.ErrUnknownCodec) {
		t.Fatalf("New(xml) error = %v, want ErrUnknownCodec", err)
	}
	c, err := codec.New("")
	if err != nil || c.Name() != "json" {
		t.Fatalf("New(\"\") = %v, %v; want json codec", c, err)
	}
}
