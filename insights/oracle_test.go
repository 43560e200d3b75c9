package insights

import (
	"context"
	"errors"
	"testing"
)

// fakeGen scripts oracle behavior per request; tests select on SchemaName to
// fail some stages while serving others.
type fakeGen struct {
	fn func(req GenerateRequest) ([]byte, error)
}

func (f fakeGen) Generate(_ context.Context, req GenerateRequest) ([]byte, error) {
	return f.fn(req)
}

var errOracleDown = errors.New("oracle down")

// failingGen simulates a fully unavailable oracle.
var failingGen = fakeGen{fn: func(GenerateRequest) ([]byte, error) {
	return nil, errOracleDown
}}

func respondWith(payload string) fakeGen {
	return fakeGen{fn: func(GenerateRequest) ([]byte, error) {
		return []byte(payload), nil
	}}
}

func TestDecodeModelJSON(t *testing.T) {
	t.Parallel()

	type shape struct {
		Name string `json:"name"`
	}

	cases := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"plain", `{"name":"ok"}`, "ok", false},
		{"whitespace", "  \n {\"name\":\"ok\"} \n", "ok", false},
		{"wrapped in prose", "Here you go:\n{\"name\":\"ok\"}\nHope that helps!", "ok", false},
		{"empty", "", "", true},
		{"no object", "sorry, I cannot do that", "", true},
		{"broken object", `{"name": `, "", true},
	}
	for _, tc := range cases {
		var v shape
		err := decodeModelJSON([]byte(tc.output), &v)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: err=nil, want error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: err=%v", tc.name, err)
		}
		if v.Name != tc.want {
			t.Fatalf("%s: Name=%q, want %q", tc.name, v.Name, tc.want)
		}
	}
}
