package render_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/render"
	"github.com/goliatone/go-serviceform/pkg/testsupport"
)

func TestEncoders_Golden(t *testing.T) {
	service := testsupport.MustLoadService(t, filepath.Join("testdata", "service.json"))

	cases := []struct {
		encoder render.Encoder
		golden  string
	}{
		{encoder: render.JSONEncoder{Indent: true}, golden: "service.json.golden"},
		{encoder: render.PrettyEncoder{}, golden: "service.pretty.golden"},
	}
	for _, tc := range cases {
		t.Run(tc.encoder.Name(), func(t *testing.T) {
			out, err := tc.encoder.Encode(service)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			testsupport.AssertGolden(t, filepath.Join("testdata", tc.golden), out)
		})
	}
}

func TestGoldenPayload_MatchesSchema(t *testing.T) {
	data := testsupport.MustReadGolden(t, filepath.Join("testdata", "service.json.golden"))
	if err := render.ValidatePayload(catalog.Default(), data); err != nil {
		t.Fatalf("golden payload does not match schema: %v", err)
	}
}
