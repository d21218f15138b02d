package ledger

import (
	"fmt"
	"sync"
	"time"
)

// this file contains the access control model guarding report distribution:
// a per-report password policy and a registry of authorized identities with
// expiring grants.

// PasswordPolicy derives the password protecting a given report.
type PasswordPolicy func(key PeriodKey) string

// SuffixPolicy returns a policy appending a period-derived suffix to prefix:
// the two-digit month for monthly reports, the last two digits of the year
// for yearly ones.
func SuffixPolicy(prefix string) PasswordPolicy {
	return func(key PeriodKey) string {
		if key.IsYearly() {
			return fmt.Sprintf("%s%02d", prefix, key.Year()%100)
		}
		return fmt.Sprintf("%s%02d", prefix, key.Month())
	}
}

// Authorizer tracks which identities may fetch reports. Grants expire; a
// lapsed identity must be granted again.
type Authorizer struct {
	mu     sync.Mutex
	grants map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthorizer returns an empty registry whose grants last ttl. now is the
// clock, nil means time.Now.
func NewAuthorizer(ttl time.Duration, now func() time.Time) *Authorizer {
	if now == nil {
		now = time.Now
	}
	return &Authorizer{
		grants: make(map[string]time.Time),
		ttl:    ttl,
		now:    now,
	}
}

// Grant authorizes identity until ttl from now. Granting again extends an
// existing authorization.
func (a *Authorizer) Grant(identity string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.grants[identity] = a.now().Add(a.ttl)
}

// Allowed reports whether identity holds an unexpired grant. Expired grants
// are pruned on the way.
func (a *Authorizer) Allowed(identity string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	expiry, ok := a.grants[identity]
	if !ok {
		return false
	}
	if !a.now().Before(expiry) {
		delete(a.grants, identity)
		return false
	}
	return true
}

// Revoke removes identity's grant if any.
func (a *Authorizer) Revoke(identity string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.grants, identity)
}
