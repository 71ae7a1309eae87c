package utils

import "testing"

type sample struct {
	Amount int     `json:"amount"`
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
	Deck   string  `json:"deck"`
}

func TestDecodeJSONParams(t *testing.T) {
	var s sample
	err := Decode(map[string]interface{}{"amount": float64(4), "volume": 0.25, "muted": true, "deck": "order"}, &s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Amount != 4 || s.Volume != 0.25 || !s.Muted || s.Deck != "order" {
		t.Fatalf("unexpected result %+v", s)
	}
}

func TestDecodeStringHash(t *testing.T) {
	var s sample
	err := Decode(map[string]string{"amount": "7", "volume": "0.5", "muted": "false"}, &s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Amount != 7 || s.Volume != 0.5 || s.Muted {
		t.Fatalf("unexpected result %+v", s)
	}
}

func TestDecodeBadNumber(t *testing.T) {
	var s sample
	if err := Decode(map[string]string{"amount": "lots"}, &s); err == nil {
		t.Fatalf("expected error for non-numeric amount")
	}
}

func TestShortID(t *testing.T) {
	a, b := ShortID(), ShortID()
	if len(a) != 8 || a == b {
		t.Fatalf("expected two distinct 8 char ids, got %q %q", a, b)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-3, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(4, 0, 10) != 4 {
		t.Fatalf("clamp out of range")
	}
	if ClampFloat(1.5, 0, 1) != 1 {
		t.Fatalf("expected 1")
	}
}
