package render

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"bitbucket.org/deskea/bdc_backend/compose"
	"bitbucket.org/deskea/bdc_backend/models"
)

func renderMinimal(t *testing.T) []byte {
	t.Helper()
	cfg := &models.OrderConfig{
		Client: &models.PartyConfig{
			RaisonSociale: "ACME SAS",
			Representant:  "Jeanne Martin, Directrice Générale",
		},
	}
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	ncfg, err := compose.Normalize(cfg, now, false)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	doc, err := compose.Assemble(ncfg)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	out, err := NewXLSX().Render(doc)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	return out
}

func TestRender_OneSheetPerPage(t *testing.T) {
	out := renderMinimal(t)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	want := []string{"Bon de Commande", "Annexe 1", "Annexe 2", "Annexe 3", "Annexe 4"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("expected %d sheets, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sheet %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	cover, err := f.GetCellValue("Bon de Commande", "A1")
	if err != nil {
		t.Fatalf("reading cover cell: %v", err)
	}
	if cover != "DESKEA" {
		t.Fatalf("cover cell A1: expected DESKEA, got %q", cover)
	}
}

func TestRender_NilDocument(t *testing.T) {
	if _, err := NewXLSX().Render(nil); err == nil {
		t.Fatal("expected an error for a nil document")
	}
}

func TestSheetName(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"Annexe 1 – Grille tarifaire détaillée", "Annexe 1"},
		{"Annexe 3 – Engagements de Niveaux de Service (SLA)", "Annexe 3"},
		{"Planning : phase 1/2", "Planning   phase 1 2"},
		{"", "Annexe"},
	}
	for _, tc := range cases {
		if got := sheetName(tc.in); got != tc.expected {
			t.Fatalf("sheetName(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestSheetName_TruncatesOnRunes(t *testing.T) {
	got := sheetName(strings.Repeat("é", 40))
	if got != strings.Repeat("é", 31) {
		t.Fatalf("expected 31 runes, got %q (%d runes)", got, utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
}
