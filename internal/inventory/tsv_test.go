package inventory

import (
	"strings"
	"testing"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
)

const exportHeader = "Stockpile Title\tStockpile Name\tStructure Type\tQuantity\tName\tCrated?\tPer Crate\tTotal\tDescription\tCodeName\n"

func TestDecodeTSV(t *testing.T) {
	export := exportHeader +
		"12.front depot\tAlpha\tStorage Depot\t5\tBasic Materials\ttrue\t100\t500\tBasic building blocks\tCloth\n" +
		"12.front depot\tAlpha\tStorage Depot\t30\tBasic Materials\tfalse\t100\t30\tBasic building blocks\tCloth\n"

	rows, err := DecodeTSV(strings.NewReader(export))
	if err != nil {
		t.Fatalf("DecodeTSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.StockRef != "12.front depot" || first.Quantity != 5 || !first.Crated {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.CodeName != "Cloth" || first.PerCrate != 100 {
		t.Errorf("unexpected first row: %+v", first)
	}
	if rows[1].Crated {
		t.Errorf("second row should be uncrated")
	}
}

func TestDecodeTSVRejectsWrongHeader(t *testing.T) {
	export := "Title\tStockpile Name\tStructure Type\tQuantity\tName\tCrated?\tPer Crate\tTotal\tDescription\tCodeName\n"

	_, err := DecodeTSV(strings.NewReader(export))
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeInvalidFormat {
		t.Fatalf("got %v, want invalid-format error", err)
	}
}

func TestDecodeTSVRejectsBadCratedFlag(t *testing.T) {
	export := exportHeader +
		"12.x\tAlpha\tStorage Depot\t5\tBasic Materials\tTRUE\t100\t500\t\tCloth\n"

	_, err := DecodeTSV(strings.NewReader(export))
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeInvalidFormat {
		t.Fatalf("got %v, want invalid-format error", err)
	}
}

func TestDecodeTSVRejectsBadQuantity(t *testing.T) {
	export := exportHeader +
		"12.x\tAlpha\tStorage Depot\tfive\tBasic Materials\ttrue\t100\t500\t\tCloth\n"

	_, err := DecodeTSV(strings.NewReader(export))
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeInvalidFormat {
		t.Fatalf("got %v, want invalid-format error", err)
	}
}

func TestParseStockRef(t *testing.T) {
	cases := []struct {
		ref string
		id  int64
		ok  bool
	}{
		{"12.front depot", 12, true},
		{"7.", 7, true},
		{"42", 42, true},
		{"front depot", 0, false},
		{"0.unset", 0, false},
		{"-3.negative", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		id, ok := ParseStockRef(tc.ref)
		if id != tc.id || ok != tc.ok {
			t.Errorf("ParseStockRef(%q) = (%d, %v), want (%d, %v)", tc.ref, id, ok, tc.id, tc.ok)
		}
	}
}
