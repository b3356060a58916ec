package quotas

import (
	"testing"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
)

func TestParseQuotaText(t *testing.T) {
	entries, err := ParseQuotaText("Blakerow 871: 30, Basic Materials:500 , Bandages: 20")
	if err != nil {
		t.Fatalf("ParseQuotaText: %v", err)
	}
	want := []Entry{
		{Name: "Blakerow 871", Amount: 30},
		{Name: "Basic Materials", Amount: 500},
		{Name: "Bandages", Amount: 20},
	}
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestParseQuotaTextLastAssignmentWins(t *testing.T) {
	entries, err := ParseQuotaText("Bandages: 20, Bandages: 50")
	if err != nil {
		t.Fatalf("ParseQuotaText: %v", err)
	}
	if len(entries) != 1 || entries[0].Amount != 50 {
		t.Fatalf("entries = %+v, want single Bandages:50", entries)
	}
}

func TestParseQuotaTextNegativeAmount(t *testing.T) {
	// Negative targets are stored as written; the shortfall report clamps.
	entries, err := ParseQuotaText("Bandages: -5")
	if err != nil {
		t.Fatalf("ParseQuotaText: %v", err)
	}
	if entries[0].Amount != -5 {
		t.Fatalf("amount = %d, want -5", entries[0].Amount)
	}
}

func TestParseQuotaTextMalformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"Bandages",
		"Bandages: twenty",
		": 20",
		"Bandages: 20,,Cloth: 5",
		"Bandages: 20, Cloth",
	}
	for _, text := range cases {
		_, err := ParseQuotaText(text)
		typed := errors.As(err)
		if typed == nil || typed.Code() != errors.CodeInvalidFormat {
			t.Errorf("ParseQuotaText(%q): got %v, want invalid-format error", text, err)
		}
	}
}
