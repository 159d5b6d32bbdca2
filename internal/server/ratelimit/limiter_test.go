package ratelimit

import (
	"net/http"
	"testing"
	"time"
)

func TestLimiterAllowsBurstThenDenies(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	defer l.Close()

	for i := 0; i < 3; i++ {
		if res := l.Allow("1.2.3.4"); !res.Allowed {
			t.Fatalf("request %d denied, want allowed", i)
		}
	}
	res := l.Allow("1.2.3.4")
	if res.Allowed {
		t.Fatal("request over burst allowed, want denied")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", res.RetryAfter)
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	defer l.Close()

	if !l.Allow("1.1.1.1").Allowed {
		t.Fatal("first key denied")
	}
	if !l.Allow("2.2.2.2").Allowed {
		t.Error("second key denied, buckets should be per-key")
	}
}

func TestTiersMatch(t *testing.T) {
	tiers := NewTiers(100, 10)
	defer tiers.Close()

	if tiers.Match(http.MethodGet) != tiers.Read {
		t.Error("GET should use the read tier")
	}
	if tiers.Match(http.MethodPost) != tiers.Write {
		t.Error("POST should use the write tier")
	}
	if tiers.Match(http.MethodDelete) != tiers.Write {
		t.Error("DELETE should use the write tier")
	}
}

func TestDisabledTiers(t *testing.T) {
	tiers := NewTiers(0, 0)
	defer tiers.Close()
	if tiers.Match(http.MethodGet) != nil || tiers.Match(http.MethodPost) != nil {
		t.Error("zero rates should disable both tiers")
	}

	var nilTiers *Tiers
	if nilTiers.Match(http.MethodGet) != nil {
		t.Error("nil tiers should match nothing")
	}
}
