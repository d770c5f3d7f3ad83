package domain_test

import (
	"errors"
	"testing"

	"threadsuite/internal/modules/launcher/domain"
)

func TestNewTarget(t *testing.T) {
	t.Parallel()
	target, err := domain.NewTarget(" main ", "/suite/dist/app", "/suite/app")
	if err != nil {
		t.Fatalf("target should be valid: %v", err)
	}
	if target.Name != "main" {
		t.Fatalf("name should be trimmed, got %q", target.Name)
	}
	got := target.Candidates()
	if len(got) != 2 || got[0] != "/suite/dist/app" || got[1] != "/suite/app" {
		t.Fatalf("unexpected candidate order: %v", got)
	}
}

func TestNewTargetRejectsInvalid(t *testing.T) {
	t.Parallel()
	if _, err := domain.NewTarget("", "/a", "/b"); err == nil {
		t.Fatalf("missing name should fail")
	}
	if _, err := domain.NewTarget("main", "/a", ""); err == nil {
		t.Fatalf("missing fallback should fail")
	}
	_, err := domain.NewTarget("main", "/suite/dist/../app", "/suite/app")
	if !errors.Is(err, domain.ErrSelfReferentialTarget) {
		t.Fatalf("tiers resolving to one path should fail, got %v", err)
	}
}

func TestTargetStatusResolvable(t *testing.T) {
	t.Parallel()
	if (domain.TargetStatus{}).Resolvable() {
		t.Fatalf("no existing path means unresolvable")
	}
	if !(domain.TargetStatus{FallbackExists: true}).Resolvable() {
		t.Fatalf("fallback alone is enough")
	}
}
