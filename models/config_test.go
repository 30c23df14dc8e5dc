package models

import (
	"encoding/json"
	"testing"
)

func TestFlexString_AcceptsStringsAndNumbers(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{`{"setup": "4500"}`, "4500"},
		{`{"setup": 4500}`, "4500"},
		{`{"setup": 45.5}`, "45.5"},
		{`{"setup": null}`, ""},
		{`{}`, ""},
	}
	for _, tc := range cases {
		var sub Subscription
		if err := json.Unmarshal([]byte(tc.in), &sub); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if sub.Setup.String() != tc.expected {
			t.Fatalf("%s: expected %q, got %q", tc.in, tc.expected, sub.Setup.String())
		}
	}
}

func TestFlexString_RejectsObjects(t *testing.T) {
	var sub Subscription
	if err := json.Unmarshal([]byte(`{"setup": {"a": 1}}`), &sub); err == nil {
		t.Fatal("expected an error for an object value")
	}
}

func TestSolution_NeverNil(t *testing.T) {
	cfg := OrderConfig{}
	if sub := cfg.Solution("engage"); sub == nil || sub.Active {
		t.Fatalf("expected inactive zero subscription, got %+v", sub)
	}

	cfg.Solutions = map[string]*Subscription{"engage": nil}
	if sub := cfg.Solution("engage"); sub == nil || sub.Active {
		t.Fatalf("nil map entry must read as inactive, got %+v", sub)
	}
}
