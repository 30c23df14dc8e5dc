package compose

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"bitbucket.org/deskea/bdc_backend/models"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func minimalConfig() *models.OrderConfig {
	return &models.OrderConfig{
		Client: &models.PartyConfig{
			RaisonSociale: "ACME SAS",
			Adresse:       "10 rue de la Paix – 75002 Paris",
			Rcs:           "RCS Paris 123 456 789",
			Representant:  "Jeanne Martin, Directrice Générale",
		},
	}
}

func TestNormalize_FillsDefaultsForAbsentGroups(t *testing.T) {
	got, err := Normalize(minimalConfig(), testNow, false)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.Deskea.RaisonSociale != "Groupe Tersea SAS" {
		t.Fatalf("expected default issuer, got %q", got.Deskea.RaisonSociale)
	}
	if got.Contrat.Duree != "12 mois" {
		t.Fatalf("expected default duration, got %q", got.Contrat.Duree)
	}
	if got.Financier.Facturation != "mensuelle à terme à échoir" {
		t.Fatalf("expected default billing cadence, got %q", got.Financier.Facturation)
	}
}

func TestNormalize_MergeIsFieldLevel(t *testing.T) {
	cfg := minimalConfig()
	cfg.Deskea.RaisonSociale = "Tersea Holding"
	cfg.Contrat.Duree = "36 mois"

	got, err := Normalize(cfg, testNow, false)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.Deskea.RaisonSociale != "Tersea Holding" {
		t.Fatalf("override lost: %q", got.Deskea.RaisonSociale)
	}
	if got.Deskea.Adresse != "1 Chemin de la Loge – 31100 Toulouse" {
		t.Fatalf("sibling field should keep its default, got %q", got.Deskea.Adresse)
	}
	if got.Contrat.Duree != "36 mois" {
		t.Fatalf("override lost: %q", got.Contrat.Duree)
	}
	if got.Contrat.Hebergement == "" {
		t.Fatal("sibling field should keep its default")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first, err := Normalize(minimalConfig(), testNow, false)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	second, err := Normalize(first, testNow, false)
	if err != nil {
		t.Fatalf("Normalize (second pass) error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalization is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNormalize_DerivedReferenceAndOutputPath(t *testing.T) {
	cfg := minimalConfig()
	cfg.Client.RaisonSociale = "ACME & Co"

	got, err := Normalize(cfg, testNow, false)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.BdcRef != "BDC-DESK-2025-___" {
		t.Fatalf("unexpected reference %q", got.BdcRef)
	}
	if got.OutputPath != "BDC_ACME___Co_2025-03-14.xlsx" {
		t.Fatalf("unexpected output path %q", got.OutputPath)
	}
}

func TestNormalize_SuppliedReferenceWins(t *testing.T) {
	cfg := minimalConfig()
	cfg.BdcRef = "BDC-DESK-2025-042"
	cfg.OutputPath = "custom.xlsx"

	got, err := Normalize(cfg, testNow, false)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.BdcRef != "BDC-DESK-2025-042" || got.OutputPath != "custom.xlsx" {
		t.Fatalf("supplied values lost: %q %q", got.BdcRef, got.OutputPath)
	}
}

func TestNormalize_MissingClientFails(t *testing.T) {
	_, err := Normalize(&models.OrderConfig{}, testNow, false)
	if err == nil {
		t.Fatal("expected an error for a config without client")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
}

func TestNormalize_NilConfigFails(t *testing.T) {
	_, err := Normalize(nil, testNow, false)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
}

func TestNormalize_StrictRejectsIncompletePricing(t *testing.T) {
	cfg := minimalConfig()
	cfg.Solutions = map[string]*models.Subscription{
		"engage": {Active: true},
	}

	_, err := Normalize(cfg, testNow, true)
	if err == nil {
		t.Fatal("expected strict mode to reject an active solution without pricing")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
}

func TestNormalize_StrictAcceptsCompletePricing(t *testing.T) {
	cfg := minimalConfig()
	cfg.Solutions = map[string]*models.Subscription{
		"engage": {
			Active:       true,
			Volume:       "10 000 min",
			PrixUnitaire: "0,12 €/min",
			TotalAnnuel:  "14 400",
			Setup:        "4500",
		},
	}

	if _, err := Normalize(cfg, testNow, true); err != nil {
		t.Fatalf("strict mode rejected complete pricing: %v", err)
	}
}

func TestNormalize_StrictRejectsBadPhone(t *testing.T) {
	cfg := minimalConfig()
	cfg.Contact.Tel = "not-a-phone"

	_, err := Normalize(cfg, testNow, true)
	if err == nil {
		t.Fatal("expected strict mode to reject an invalid contact phone")
	}
}

func TestNormalize_DraftModeIgnoresMissingPricing(t *testing.T) {
	cfg := minimalConfig()
	cfg.Solutions = map[string]*models.Subscription{
		"engage": {Active: true},
	}
	if _, err := Normalize(cfg, testNow, false); err != nil {
		t.Fatalf("draft mode must absorb missing pricing, got: %v", err)
	}
}
