package sqlutil

import (
	"testing"

	"github.com/google/uuid"
)

func TestNullIfEmpty(t *testing.T) {
	if NullIfEmpty("") != nil || NullIfEmpty("   ") != nil {
		t.Error("blank strings should become nil")
	}
	if got := NullIfEmpty("Zilker Park"); got == nil || *got != "Zilker Park" {
		t.Errorf("NullIfEmpty kept value = %v", got)
	}
}

func TestFromStringPtr(t *testing.T) {
	if got := FromStringPtr(nil, "none"); got != "none" {
		t.Errorf("FromStringPtr(nil) = %q", got)
	}
	v := "x"
	if got := FromStringPtr(&v, "none"); got != "x" {
		t.Errorf("FromStringPtr(&x) = %q", got)
	}
}

func TestUUIDStrings(t *testing.T) {
	id := uuid.New()
	got := UUIDStrings([]uuid.UUID{id})
	if len(got) != 1 || got[0] != id.String() {
		t.Errorf("UUIDStrings = %v", got)
	}
}
