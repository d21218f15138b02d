package ledger

import (
	"testing"
	"time"
)

func TestSuffixPolicy(t *testing.T) {
	policy := SuffixPolicy("pwdtemp")

	testCases := []struct {
		key  string
		want string
	}{
		{"2025-10", "pwdtemp10"},
		{"2025-03", "pwdtemp03"},
		{"2025", "pwdtemp25"},
		{"2009", "pwdtemp09"},
	}
	for _, tc := range testCases {
		if got := policy(MustParsePeriodKey(tc.key)); got != tc.want {
			t.Errorf("policy(%s) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestAuthorizer(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	a := NewAuthorizer(time.Hour, clock)

	if a.Allowed("alice") {
		t.Error("identity allowed before any grant")
	}

	a.Grant("alice")
	if !a.Allowed("alice") {
		t.Error("granted identity not allowed")
	}
	if a.Allowed("bob") {
		t.Error("grant leaked to another identity")
	}

	// Just before expiry the grant still holds; at expiry it lapses.
	now = now.Add(time.Hour - time.Second)
	if !a.Allowed("alice") {
		t.Error("grant lapsed before its ttl")
	}
	now = now.Add(time.Second)
	if a.Allowed("alice") {
		t.Error("expired grant still allowed")
	}

	// A lapsed identity can be granted again.
	a.Grant("alice")
	if !a.Allowed("alice") {
		t.Error("re-grant after expiry not allowed")
	}

	a.Revoke("alice")
	if a.Allowed("alice") {
		t.Error("revoked identity still allowed")
	}
}

func TestAuthorizer_GrantExtends(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	a := NewAuthorizer(time.Hour, clock)

	a.Grant("alice")
	now = now.Add(30 * time.Minute)
	a.Grant("alice") // extends to now+1h
	now = now.Add(45 * time.Minute)
	if !a.Allowed("alice") {
		t.Error("extended grant lapsed with the original ttl")
	}
}
