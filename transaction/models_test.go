package transaction

import (
	"testing"
	"time"
)

func TestRevoked(t *testing.T) {
	now := time.Now()

	if (Transaction{}).Revoked() {
		t.Error("transaction without revocation date reported revoked")
	}
	revoked := Transaction{RevocationDate: &now, RevocationReason: RevocationRefunded}
	if !revoked.Revoked() {
		t.Error("transaction with revocation date not reported revoked")
	}
}

func TestEntitles(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		txn  Transaction
		want bool
	}{
		{"Clean", Transaction{}, true},
		{"Revoked", Transaction{RevocationDate: &now}, false},
		{"Upgraded", Transaction{IsUpgraded: true}, false},
		{"RevokedAndUpgraded", Transaction{RevocationDate: &now, IsUpgraded: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.txn.Entitles(); got != tt.want {
				t.Errorf("Entitles() = %v, want %v", got, tt.want)
			}
		})
	}
}
