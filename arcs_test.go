package arcs_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/arcs"
	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/codec"
	"github.com/stewi1014/arcs/encio"
	"github.com/stewi1014/arcs/envelope"
	"github.com/stewi1014/arcs/value"
)

type scene struct {
	Name    value.Name
	Title   value.Text
	Spawn   value.Transform
	Bounds  value.Box
	Tint    value.LinearColor
	Tags    value.Set[string]
	Paths   map[string][]value.Vector
	Respawn time.Duration
}

var sceneCodec codec.Codec[scene] = func(ar archive.Archive, name string, s *scene) error {
	return codec.Object(ar, name,
		codec.Bind(codec.Name, "Name", &s.Name),
		codec.Bind(codec.Text, "Title", &s.Title),
		codec.Bind(codec.Transform, "Spawn", &s.Spawn),
		codec.Bind(codec.Box, "Bounds", &s.Bounds),
		codec.Bind(codec.LinearColor, "Tint", &s.Tint),
		codec.Bind(codec.Set(codec.String), "Tags", &s.Tags),
		codec.Bind(codec.Map(codec.String, codec.Slice(codec.Vector)), "Paths", &s.Paths),
		codec.Bind(codec.Timespan, "Respawn", &s.Respawn),
	)
}

func testScene() scene {
	return scene{
		Name:   value.NewName("Courtyard"),
		Title:  value.TextFromString("The Courtyard"),
		Spawn:  value.NewTransform(value.QuatIdentity, value.Vector{X: 100, Y: -20, Z: 0.5}, value.Vector{X: 1, Y: 1, Z: 1}),
		Bounds: value.NewBox(value.Vector{X: -500, Y: -500}, value.Vector{X: 500, Y: 500, Z: 200}),
		Tint:   value.LinearColor{R: 1, G: 0.5, B: 0.25, A: 1},
		Tags:   value.NewSet("outdoor", "spawn"),
		Paths: map[string][]value.Vector{
			"patrol": {{X: 1}, {X: 2, Y: 2}, {Y: 3}},
			"empty":  {},
		},
		Respawn: 90 * time.Second,
	}
}

var configs = []*arcs.Config{
	nil,
	{Format: arcs.Binary, Compression: envelope.CompressionLZ4},
	{Format: arcs.Binary, Compression: envelope.CompressionZstd},
	{Format: arcs.CBOR},
	{Format: arcs.YAML},
}

func configName(c *arcs.Config) string {
	if c == nil {
		return "default"
	}
	return fmt.Sprintf("%v-%v", c.Format, c.Compression)
}

func TestMarshal(t *testing.T) {
	for _, config := range configs {
		t.Run(configName(config), func(t *testing.T) {
			in := testScene()
			data, err := arcs.Marshal(sceneCodec, &in, config)
			td.CmpNoError(t, err)

			var got scene
			td.CmpNoError(t, arcs.Unmarshal(data, sceneCodec, &got, config))
			td.Cmp(t, got, testScene())
		})
	}
}

func TestYAMLDocument(t *testing.T) {
	in := testScene()
	data, err := arcs.Marshal(sceneCodec, &in, &arcs.Config{Format: arcs.YAML})
	td.CmpNoError(t, err)

	doc := string(data)
	td.CmpTrue(t, strings.HasPrefix(doc, "value0:\n"), doc)
	td.Cmp(t, doc, td.Contains("Name: Courtyard"))
	td.Cmp(t, doc, td.Contains("Respawn: 1m30s"))
	td.Cmp(t, doc, td.Contains("IsValid: true"))
}

func TestUnmarshalErrors(t *testing.T) {
	in := testScene()
	binary, err := arcs.Marshal(sceneCodec, &in, nil)
	td.CmpNoError(t, err)

	testCases := []struct {
		desc   string
		data   []byte
		config *arcs.Config
		load   func([]byte, *arcs.Config) error
		want   error
	}{
		{
			desc: "trailing data",
			data: binary,
			load: func(data []byte, config *arcs.Config) error {
				var v value.Vector
				return arcs.Unmarshal(data, codec.Vector, &v, config)
			},
			want: encio.ErrMalformed,
		},
		{
			desc: "damaged",
			data: append(append([]byte(nil), binary[:len(binary)-1]...), binary[len(binary)-1]^1),
			want: encio.ErrMalformed,
		},
		{
			desc:   "binary read as yaml",
			data:   binary,
			config: &arcs.Config{Format: arcs.YAML},
			want:   encio.ErrMalformed,
		},
		{
			desc:   "unknown format",
			data:   binary,
			config: &arcs.Config{Format: 42},
			want:   encio.ErrBadConfig,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			load := tC.load
			if load == nil {
				load = func(data []byte, config *arcs.Config) error {
					var s scene
					return arcs.Unmarshal(data, sceneCodec, &s, config)
				}
			}

			err := load(tC.data, tC.config)
			td.CmpTrue(t, errors.Is(err, tC.want), "got %v", err)
		})
	}
}

func TestConvert(t *testing.T) {
	in := testScene()
	yamlDoc, err := arcs.Marshal(sceneCodec, &in, &arcs.Config{Format: arcs.YAML})
	td.CmpNoError(t, err)

	cborDoc, err := arcs.Convert(yamlDoc, arcs.YAML, arcs.CBOR)
	td.CmpNoError(t, err)

	var got scene
	td.CmpNoError(t, arcs.Unmarshal(cborDoc, sceneCodec, &got, &arcs.Config{Format: arcs.CBOR}))
	td.Cmp(t, got, testScene())

	_, err = arcs.Convert(yamlDoc, arcs.YAML, arcs.Binary)
	td.CmpTrue(t, errors.Is(err, encio.ErrBadConfig))
}

func TestParseFormat(t *testing.T) {
	for _, f := range []arcs.Format{arcs.Binary, arcs.CBOR, arcs.YAML} {
		parsed, err := arcs.ParseFormat(f.String())
		td.CmpNoError(t, err)
		td.Cmp(t, parsed, f)
	}

	parsed, err := arcs.ParseFormat("yml")
	td.CmpNoError(t, err)
	td.Cmp(t, parsed, arcs.YAML)

	_, err = arcs.ParseFormat("json")
	td.CmpTrue(t, errors.Is(err, encio.ErrBadConfig))

	td.CmpFalse(t, arcs.Binary.SelfDescribing())
	td.CmpTrue(t, arcs.CBOR.SelfDescribing())
}
