package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPriceItem(t *testing.T) {
	t.Run("IsHot", func(t *testing.T) {
		tests := []struct {
			price float64
			want  bool
		}{
			{899, false},
			{900, true},
			{999, true},
		}
		for _, tt := range tests {
			if got := (PriceItem{Price: tt.price}).IsHot(); got != tt.want {
				t.Errorf("PriceItem{Price: %v}.IsHot() = %v, want %v", tt.price, got, tt.want)
			}
		}
	})

	t.Run("Key", func(t *testing.T) {
		a := PriceItem{Code: "ABC123", Timestamp: 1705321845000}
		b := PriceItem{Code: "ABC123", Timestamp: 1705321846000}
		if a.Key() == b.Key() {
			t.Errorf("relisted code shares key %q", a.Key())
		}
		if a.Key() != "ABC123@1705321845000" {
			t.Errorf("Key() = %q, want %q", a.Key(), "ABC123@1705321845000")
		}
	})

	t.Run("decodes feed json", func(t *testing.T) {
		var items []PriceItem
		body := `[{"code":"K9X2LM","price":320,"server":"S1","ts":1705321845000}]`
		if err := json.Unmarshal([]byte(body), &items); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("len(items) = %d, want 1", len(items))
		}
		if items[0].Code != "K9X2LM" || items[0].Price != 320 || items[0].Timestamp != 1705321845000 {
			t.Errorf("items[0] = %+v", items[0])
		}
	})
}

func TestNewSubmitRequest(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		price   string
		server  string
		want    SubmitRequest
		wantErr error
	}{
		{
			name:  "normalizes code and defaults server",
			code:  " ab c123 ",
			price: "500",
			want:  SubmitRequest{Code: "ABC123", Price: 500, Server: DefaultServer},
		},
		{
			name:   "keeps explicit server",
			code:   "WAR3",
			price:  "1",
			server: "S2",
			want:   SubmitRequest{Code: "WAR3", Price: 1, Server: "S2"},
		},
		{
			name:  "cjk code",
			code:  "灵宝一号",
			price: "999",
			want:  SubmitRequest{Code: "灵宝一号", Price: 999, Server: DefaultServer},
		},
		{
			name:  "special casing",
			code:  "straße9",
			price: "20",
			want:  SubmitRequest{Code: "STRASSE9", Price: 20, Server: DefaultServer},
		},
		{name: "code too short", code: "AB", price: "10", wantErr: ErrInvalidCode},
		{name: "code too long", code: "ABCDEFGHIJKLM", price: "10", wantErr: ErrInvalidCode},
		{name: "code with symbol", code: "AB-12", price: "10", wantErr: ErrInvalidCode},
		{name: "price zero", code: "ABC", price: "0", wantErr: ErrInvalidPrice},
		{name: "price too high", code: "ABC", price: "1000", wantErr: ErrInvalidPrice},
		{name: "price not a number", code: "ABC", price: "cheap", wantErr: ErrInvalidPrice},
		{name: "price empty", code: "ABC", price: "", wantErr: ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSubmitRequest(tt.code, tt.price, tt.server)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewSubmitRequest() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSubmitRequest() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NewSubmitRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewFeedbackRequest(t *testing.T) {
	got, err := NewFeedbackRequest(" abc123 ", "  price is fake ")
	if err != nil {
		t.Fatalf("NewFeedbackRequest() unexpected error: %v", err)
	}
	if got.Code != "ABC123" || got.Reason != "price is fake" {
		t.Errorf("NewFeedbackRequest() = %+v", got)
	}

	if _, err := NewFeedbackRequest("ABC", " "); !errors.Is(err, ErrInvalidFeedback) {
		t.Errorf("empty reason error = %v, want %v", err, ErrInvalidFeedback)
	}
	if _, err := NewFeedbackRequest("", "spam"); !errors.Is(err, ErrInvalidFeedback) {
		t.Errorf("empty code error = %v, want %v", err, ErrInvalidFeedback)
	}
	if _, err := NewFeedbackRequest("ABC", strings.Repeat("x", MaxFeedbackReason+1)); !errors.Is(err, ErrInvalidFeedback) {
		t.Errorf("long reason error = %v, want %v", err, ErrInvalidFeedback)
	}
}

func TestNormalizeAction(t *testing.T) {
	for _, in := range []string{"keep", " DELETE "} {
		if _, err := NormalizeAction(in); err != nil {
			t.Errorf("NormalizeAction(%q) unexpected error: %v", in, err)
		}
	}
	if _, err := NormalizeAction("ban"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("NormalizeAction(%q) error = %v, want %v", "ban", err, ErrInvalidAction)
	}
}

func TestValidSort(t *testing.T) {
	if !ValidSort(SortByTime) || !ValidSort(SortByPrice) {
		t.Error("ValidSort rejected a known sort order")
	}
	if ValidSort("volume") {
		t.Error("ValidSort(\"volume\") = true, want false")
	}
}
