package utils_test

import (
	"reflect"
	"testing"

	"github.com/joeydtaylor/pulsescope/pkg/internal/utils"
)

func TestGenerateUniqueHash(t *testing.T) {
	a, b := utils.GenerateUniqueHash(), utils.GenerateUniqueHash()
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct hashes")
	}
}

func TestParseChannels(t *testing.T) {
	got, err := utils.ParseChannels(" 7, 1-3 ,2,65535")
	if err != nil {
		t.Fatalf("ParseChannels error: %v", err)
	}
	want := []uint16{1, 2, 3, 7, 65535}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if utils.FormatChannels(got) != "1,2,3,7,65535" {
		t.Fatalf("unexpected format %q", utils.FormatChannels(got))
	}

	empty, err := utils.ParseChannels("")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected no channels, got %v, %v", empty, err)
	}

	for _, bad := range []string{"x", "5-2", "70000", "-3", "1-"} {
		if _, err := utils.ParseChannels(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
