package compose

import (
	"fmt"
	"strings"
	"time"

	"bitbucket.org/deskea/bdc_backend/catalog"
	"bitbucket.org/deskea/bdc_backend/config"
	"bitbucket.org/deskea/bdc_backend/models"
	"bitbucket.org/deskea/bdc_backend/utils"
	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

var validate = validator.New()

// Normalize merges the contractual defaults into the configuration and checks
// the preconditions of composition. It is a pure transform of its inputs
// (now only feeds the derived reference and output name) and is idempotent.
//
// strict enables validated mode: every active solution must carry parseable
// financial figures instead of falling back to placeholders.
func Normalize(cfg *models.OrderConfig, now time.Time, strict bool) (*models.OrderConfig, error) {
	if cfg == nil {
		return nil, configErrorf("no configuration supplied")
	}

	out := *cfg
	out.Deskea = mergeParty(cfg.Deskea, config.DefaultDeskea())
	out.Contrat = mergeContrat(cfg.Contrat, config.DefaultContrat())
	out.Financier = mergeFinancier(cfg.Financier, config.DefaultFinancier())

	if out.Client == nil {
		return nil, configErrorf("client identity is required (no default exists for the counterpart)")
	}
	if err := validate.Struct(&out); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, configErrorf("invalid configuration: %v", err)
		}
		fields := utils.ProcessValidationErrors(verrs)
		return nil, configErrorf("invalid configuration: %v", fields)
	}

	if out.BdcRef == "" {
		out.BdcRef = fmt.Sprintf("BDC-DESK-%d-___", now.Year())
	}
	if out.OutputPath == "" {
		out.OutputPath = fmt.Sprintf("BDC_%s_%s.xlsx",
			utils.SanitizeToken(out.Client.RaisonSociale), now.Format("2006-01-02"))
	}

	if strict {
		if err := validateFinancials(&out); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func mergeParty(in, def models.PartyConfig) models.PartyConfig {
	if in.RaisonSociale == "" {
		in.RaisonSociale = def.RaisonSociale
	}
	if in.Adresse == "" {
		in.Adresse = def.Adresse
	}
	if in.Rcs == "" {
		in.Rcs = def.Rcs
	}
	if in.Representant == "" {
		in.Representant = def.Representant
	}
	return in
}

func mergeContrat(in, def models.ContractConfig) models.ContractConfig {
	if in.Duree == "" {
		in.Duree = def.Duree
	}
	if in.Hebergement == "" {
		in.Hebergement = def.Hebergement
	}
	if in.DateEffet == "" {
		in.DateEffet = def.DateEffet
	}
	if in.NbUtilisateurs == "" {
		in.NbUtilisateurs = def.NbUtilisateurs
	}
	return in
}

func mergeFinancier(in, def models.FinancialConfig) models.FinancialConfig {
	if in.Facturation == "" {
		in.Facturation = def.Facturation
	}
	if in.Paiement == "" {
		in.Paiement = def.Paiement
	}
	if in.AbonnementAnnuelHT == "" {
		in.AbonnementAnnuelHT = def.AbonnementAnnuelHT
	}
	if in.DeploiementHT == "" {
		in.DeploiementHT = def.DeploiementHT
	}
	if in.TotalAn1HT == "" {
		in.TotalAn1HT = def.TotalAn1HT
	}
	if in.RecurrentAn2HT == "" {
		in.RecurrentAn2HT = def.RecurrentAn2HT
	}
	return in
}

// validateFinancials rejects drafts: every active solution needs complete,
// parseable pricing before a validated document can be issued.
func validateFinancials(cfg *models.OrderConfig) error {
	var issues []string

	seenSlots := map[string]bool{}
	for _, e := range catalog.Entries() {
		if seenSlots[e.Slot] {
			continue
		}
		seenSlots[e.Slot] = true

		sub := cfg.Solution(e.Slot)
		if !sub.Active {
			continue
		}
		if sub.Volume == "" {
			issues = append(issues, e.Slot+": volume is missing")
		}
		if sub.PrixUnitaire == "" {
			issues = append(issues, e.Slot+": prixUnitaire is missing")
		}
		if sub.TotalAnnuel == "" {
			issues = append(issues, e.Slot+": totalAnnuel is missing")
		} else if _, ok := ParseAmount(sub.TotalAnnuel.String()); !ok {
			issues = append(issues, e.Slot+": totalAnnuel is not an amount")
		}
		if sub.Setup != "" {
			if _, ok := ParseAmount(sub.Setup.String()); !ok {
				issues = append(issues, e.Slot+": setup is not an amount")
			}
		}
	}

	if tel := strings.TrimSpace(cfg.Contact.Tel); tel != "" {
		if p, err := libphonenumber.Parse(tel, "FR"); err != nil || !libphonenumber.IsValidNumber(p) {
			issues = append(issues, "contact: tel is not a valid phone number")
		}
	}

	if len(issues) > 0 {
		return configErrorf("validated mode: %s", strings.Join(issues, "; "))
	}
	return nil
}
