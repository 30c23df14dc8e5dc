package compose

import (
	"testing"

	"bitbucket.org/deskea/bdc_backend/catalog"
	"bitbucket.org/deskea/bdc_backend/models"
)

func normalized(t *testing.T, cfg *models.OrderConfig) *models.OrderConfig {
	t.Helper()
	out, err := Normalize(cfg, testNow, false)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	return out
}

func dataRows(rows []models.Row) []models.Row {
	var out []models.Row
	for _, r := range rows {
		if !r.Header {
			out = append(out, r)
		}
	}
	return out
}

func TestCheckboxRows_AlwaysFullCatalog(t *testing.T) {
	cfg := normalized(t, minimalConfig())

	rows := dataRows(CheckboxRows(cfg))
	if len(rows) != catalog.Len() {
		t.Fatalf("expected %d checkbox rows, got %d", catalog.Len(), len(rows))
	}
	for i, r := range rows {
		if r.Cells[0].Text != "☐" {
			t.Fatalf("row %d: expected unchecked mark, got %q", i, r.Cells[0].Text)
		}
	}
}

func TestCheckboxRows_ActiveProjection(t *testing.T) {
	cfg := minimalConfig()
	cfg.Solutions = map[string]*models.Subscription{
		"engage": {Active: true},
	}
	rows := dataRows(CheckboxRows(normalized(t, cfg)))

	if rows[0].Cells[0].Text != "☑" {
		t.Fatalf("engage should be checked, got %q", rows[0].Cells[0].Text)
	}
	if !rows[0].Cells[1].Bold {
		t.Fatal("active row label should be bold")
	}
	if rows[1].Cells[0].Text != "☐" {
		t.Fatal("qualify should stay unchecked")
	}
	if rows[1].Cells[1].Color != "AAAAAA" {
		t.Fatalf("inactive row should use the muted color, got %q", rows[1].Cells[1].Color)
	}
}

func TestPricingRows_OmitsInactiveModules(t *testing.T) {
	cfg := normalized(t, minimalConfig())

	rows := PricingRows(cfg)
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
	if !rows[0].Header {
		t.Fatal("first row must be the header")
	}
}

func TestPricingRows_CatalogOrderIndependentOfInput(t *testing.T) {
	cfg := minimalConfig()
	cfg.Solutions = map[string]*models.Subscription{
		"evaluateMessages": {Active: true},
		"engage":           {Active: true},
		"evaluateAudio":    {Active: true},
		"assist":           {Active: true},
		"qualify":          {Active: true},
	}
	rows := dataRows(PricingRows(normalized(t, cfg)))

	wantRefs := []string{"ENG-001", "QUA-001", "ASS-001", "EVA-001", "EVA-002"}
	if len(rows) != len(wantRefs) {
		t.Fatalf("expected %d pricing rows, got %d", len(wantRefs), len(rows))
	}
	for i, want := range wantRefs {
		if rows[i].Cells[0].Text != want {
			t.Fatalf("row %d: expected ref %s, got %s", i, want, rows[i].Cells[0].Text)
		}
	}
}

func TestPricingRows_PlaceholderFallbacks(t *testing.T) {
	cfg := minimalConfig()
	cfg.Solutions = map[string]*models.Subscription{
		"engage": {Active: true},
	}
	rows := dataRows(PricingRows(normalized(t, cfg)))
	if len(rows) != 1 {
		t.Fatalf("expected 1 pricing row, got %d", len(rows))
	}
	r := rows[0]
	if r.Cells[2].Text != "__" {
		t.Fatalf("volume placeholder: got %q", r.Cells[2].Text)
	}
	if r.Cells[3].Text != "__ €/min" {
		t.Fatalf("unit price placeholder: got %q", r.Cells[3].Text)
	}
	if r.Cells[5].Text != "__ €" {
		t.Fatalf("annual total placeholder: got %q", r.Cells[5].Text)
	}
}

func TestPricingRows_LiteralValuesWhenSupplied(t *testing.T) {
	cfg := minimalConfig()
	cfg.Solutions = map[string]*models.Subscription{
		"engage": {
			Active:       true,
			Volume:       "10 000 min",
			PrixUnitaire: "0,12 €/min",
			TotalAnnuel:  "14 400 €",
		},
	}
	rows := dataRows(PricingRows(normalized(t, cfg)))
	r := rows[0]
	if r.Cells[2].Text != "10 000 min" || r.Cells[3].Text != "0,12 €/min" || r.Cells[5].Text != "14 400 €" {
		t.Fatalf("expected literal values, got %q %q %q", r.Cells[2].Text, r.Cells[3].Text, r.Cells[5].Text)
	}
	if r.Cells[4].Text != "/mois" {
		t.Fatalf("billing frequency: got %q", r.Cells[4].Text)
	}
}

func TestVariantMutualExclusion(t *testing.T) {
	cases := []struct {
		name       string
		sub        *models.Subscription
		wantRef    string // "" = no assist pricing row at all
		wantChecks map[string]bool
	}{
		{
			name:       "inactive",
			sub:        &models.Subscription{},
			wantRef:    "",
			wantChecks: map[string]bool{"assist": false, "assistExpert": false},
		},
		{
			name:       "standard",
			sub:        &models.Subscription{Active: true},
			wantRef:    "ASS-001",
			wantChecks: map[string]bool{"assist": true, "assistExpert": false},
		},
		{
			name:       "unknown variant activates standard",
			sub:        &models.Subscription{Active: true, Type: "premium"},
			wantRef:    "ASS-001",
			wantChecks: map[string]bool{"assist": true, "assistExpert": false},
		},
		{
			name:       "expert",
			sub:        &models.Subscription{Active: true, Type: "expert"},
			wantRef:    "ASS-002",
			wantChecks: map[string]bool{"assist": false, "assistExpert": true},
		},
		{
			name:       "expert variant but inactive",
			sub:        &models.Subscription{Type: "expert"},
			wantRef:    "",
			wantChecks: map[string]bool{"assist": false, "assistExpert": false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.Solutions = map[string]*models.Subscription{"assist": tc.sub}
			ncfg := normalized(t, cfg)

			pricing := dataRows(PricingRows(ncfg))
			switch tc.wantRef {
			case "":
				if len(pricing) != 0 {
					t.Fatalf("expected no pricing row, got %d", len(pricing))
				}
			default:
				if len(pricing) != 1 {
					t.Fatalf("expected exactly one pricing row, got %d", len(pricing))
				}
				if pricing[0].Cells[0].Text != tc.wantRef {
					t.Fatalf("expected ref %s, got %s", tc.wantRef, pricing[0].Cells[0].Text)
				}
			}

			checks := dataRows(CheckboxRows(ncfg))
			for i, e := range catalog.Entries() {
				want, ok := tc.wantChecks[e.Key]
				if !ok {
					continue
				}
				got := checks[i].Cells[0].Text == "☑"
				if got != want {
					t.Fatalf("%s: checked=%v, want %v", e.Key, got, want)
				}
			}
		})
	}
}

func TestSetupRows_FixedRowsAlwaysLast(t *testing.T) {
	cfg := normalized(t, minimalConfig())

	rows := dataRows(SetupRows(cfg))
	if len(rows) != 2 {
		t.Fatalf("expected only the two fixed rows, got %d", len(rows))
	}
	if rows[0].Cells[0].Text != "FOR-001" || rows[1].Cells[0].Text != "INT-001" {
		t.Fatalf("unexpected fixed rows: %s, %s", rows[0].Cells[0].Text, rows[1].Cells[0].Text)
	}
	if rows[0].Cells[3].Text != "__ €/sess." {
		t.Fatalf("formation unit placeholder: got %q", rows[0].Cells[3].Text)
	}
	if rows[1].Cells[3].Text != "__ €/j" {
		t.Fatalf("integration unit placeholder: got %q", rows[1].Cells[3].Text)
	}
}

func TestSetupRows_PerModuleFees(t *testing.T) {
	cfg := minimalConfig()
	cfg.Solutions = map[string]*models.Subscription{
		"engage":  {Active: true, Setup: "4500"},
		"qualify": {Active: true, Setup: "2000"},
		"assist":  {Active: true, Type: "expert", Setup: "3000"},
	}
	rows := dataRows(SetupRows(normalized(t, cfg)))

	// 3 fee rows in catalog order + 2 fixed rows.
	if len(rows) != 5 {
		t.Fatalf("expected 5 setup rows, got %d", len(rows))
	}
	wantRefs := []string{"SET-ENG", "SET-QUA", "SET-ASS", "FOR-001", "INT-001"}
	for i, want := range wantRefs {
		if rows[i].Cells[0].Text != want {
			t.Fatalf("row %d: expected %s, got %s", i, want, rows[i].Cells[0].Text)
		}
	}
	if rows[0].Cells[2].Text != "1" {
		t.Fatalf("setup quantity must be fixed at 1, got %q", rows[0].Cells[2].Text)
	}
	if rows[0].Cells[3].Text != "4500 €" || rows[0].Cells[4].Text != "4500 €" {
		t.Fatalf("unit price must equal total for quantity 1: %q vs %q", rows[0].Cells[3].Text, rows[0].Cells[4].Text)
	}
	if rows[2].Cells[1].Text != "Setup Deskea Assist (Base de Connaissances)" {
		t.Fatalf("expert setup label: got %q", rows[2].Cells[1].Text)
	}
}

func TestSetupRows_ActiveWithoutFeeEmitsNothing(t *testing.T) {
	cases := []struct {
		name  string
		setup models.FlexString
	}{
		{"empty", ""},
		{"zero", "0"},      // JSON 0 arrives as "0" through FlexString
		{"zero euro", "0 €"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.Solutions = map[string]*models.Subscription{
				"engage": {Active: true, TotalAnnuel: "14400", Setup: tc.setup},
			}
			rows := dataRows(SetupRows(normalized(t, cfg)))
			if len(rows) != 2 {
				t.Fatalf("active module without a billable setup fee must not emit a row, got %d rows", len(rows))
			}
			if rows[0].Cells[0].Text != "FOR-001" || rows[1].Cells[0].Text != "INT-001" {
				t.Fatalf("only the fixed rows should remain: %s, %s", rows[0].Cells[0].Text, rows[1].Cells[0].Text)
			}
		})
	}
}
