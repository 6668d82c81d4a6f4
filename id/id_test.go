package id_test

import (
	"strings"
	"testing"

	"github.com/quartzlabs/storehelper/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"TransactionID", id.NewTransactionID, "txn_"},
		{"RenewalID", id.NewRenewalID, "rnwl_"},
		{"EventID", id.NewEventID, "sevt_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixTransaction)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixTransaction {
		t.Errorf("expected prefix %q, got %q", id.PrefixTransaction, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"TransactionID", id.NewTransactionID, id.ParseTransactionID},
		{"RenewalID", id.NewRenewalID, id.ParseRenewalID},
		{"EventID", id.NewEventID, id.ParseEventID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParseTransactionID rejects rnwl_", id.NewRenewalID().String(), id.ParseTransactionID},
		{"ParseRenewalID rejects sevt_", id.NewEventID().String(), id.ParseRenewalID},
		{"ParseEventID rejects txn_", id.NewTransactionID().String(), id.ParseEventID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parseFn(tt.input)
			if err == nil {
				t.Errorf("expected error for cross-type parse of %q, got nil", tt.input)
			}
		})
	}
}

func TestNilID(t *testing.T) {
	var nilID id.ID

	if !nilID.IsNil() {
		t.Error("zero value should be nil")
	}
	if nilID.String() != "" {
		t.Errorf("nil ID should render empty, got %q", nilID.String())
	}
	if nilID.Prefix() != "" {
		t.Errorf("nil ID should have empty prefix, got %q", nilID.Prefix())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not-a-typeid", "txn_"} {
		if _, err := id.Parse(input); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", input)
		}
	}
}

func TestTextMarshalRoundTrip(t *testing.T) {
	original := id.NewTransactionID()

	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.String() != original.String() {
		t.Errorf("round-trip mismatch: %q != %q", decoded.String(), original.String())
	}
}
