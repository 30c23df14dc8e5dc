package compose

import (
	"bitbucket.org/deskea/bdc_backend/catalog"
	"bitbucket.org/deskea/bdc_backend/models"
)

// Row builders. Pure functions of the normalized configuration: they decide,
// per catalog entry, what is emitted and with which placeholder fallback.
// The pricing table omits inactive solutions entirely; the checkbox table
// always lists the full catalog. That asymmetry is deliberate: one is an
// order, the other is a menu.

// entryActive tells whether a catalog entry is the selected offer of its slot.
// For a two-variant slot exactly one of the entries can be active at a time.
func entryActive(e catalog.Entry, cfg *models.OrderConfig) bool {
	sub := cfg.Solution(e.Slot)
	if !sub.Active {
		return false
	}
	switch e.Variant {
	case catalog.VariantExpert:
		return sub.Type == "expert"
	case catalog.VariantStandard:
		return sub.Type != "expert"
	default:
		return true
	}
}

func fallback(v models.FlexString, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v.String()
}

// PricingRows builds annex 1.A (recurring licences), header row included.
func PricingRows(cfg *models.OrderConfig) []models.Row {
	rows := []models.Row{{
		Header: true,
		Cells: []models.Cell{
			headerCell("Réf.", 900),
			headerCell("Désignation", 3000),
			headerCell("Qté", 600),
			headerCell("P.U. HT", 1200),
			headerCell("Fréq.", 900),
			headerCell("Total HT/an", 1200),
		},
	}}

	for _, e := range catalog.Entries() {
		if !entryActive(e, cfg) {
			continue
		}
		sub := cfg.Solution(e.Slot)
		rows = append(rows, models.Row{Cells: []models.Cell{
			textCell(e.Ref, 900),
			textCell(e.Designation, 3000),
			textCell(fallback(sub.Volume, FallbackText), 600),
			textCell(fallback(sub.PrixUnitaire, e.UnitHint), 1200),
			textCell("/mois", 900),
			textCell(fallback(sub.TotalAnnuel, FallbackAmount), 1200),
		}})
	}
	return rows
}

// SetupRows builds annex 1.B (one-time deployment services): one row per
// active solution carrying a setup fee, then the two fixed training and
// integration rows, always last.
func SetupRows(cfg *models.OrderConfig) []models.Row {
	rows := []models.Row{{
		Header: true,
		Cells: []models.Cell{
			headerCell("Réf.", 900),
			headerCell("Désignation", 3600),
			headerCell("Qté", 600),
			headerCell("P.U. HT", 1200),
			headerCell("Total HT", 1500),
		},
	}}

	for _, e := range catalog.Entries() {
		if !entryActive(e, cfg) {
			continue
		}
		sub := cfg.Solution(e.Slot)
		if sub.Setup == "" {
			continue
		}
		// A fee of zero counts as no fee; the row only exists when something is billed.
		if amount, ok := ParseAmount(sub.Setup.String()); ok && amount.IsZero() {
			continue
		}
		fee := sub.Setup.String() + " €"
		rows = append(rows, models.Row{Cells: []models.Cell{
			textCell(e.SetupRef, 900),
			textCell(e.SetupLabel, 3600),
			textCell("1", 600),
			textCell(fee, 1200),
			textCell(fee, 1500),
		}})
	}

	var formation, integration models.DeploymentLine
	if cfg.Deploiement != nil {
		if cfg.Deploiement.Formation != nil {
			formation = *cfg.Deploiement.Formation
		}
		if cfg.Deploiement.Integration != nil {
			integration = *cfg.Deploiement.Integration
		}
	}
	rows = append(rows, models.Row{Cells: []models.Cell{
		textCell("FOR-001", 900),
		textCell("Formation utilisateurs", 3600),
		textCell(fallback(formation.Qty, FallbackText), 600),
		textCell(fallback(formation.Pu, FallbackSession), 1200),
		textCell(fallback(formation.Total, FallbackAmount), 1500),
	}})
	rows = append(rows, models.Row{Cells: []models.Cell{
		textCell("INT-001", 900),
		textCell("Intégrations & Connecteurs (API, SI)", 3600),
		textCell(fallback(integration.Qty, FallbackText), 600),
		textCell(fallback(integration.Pu, FallbackDaily), 1200),
		textCell(fallback(integration.Total, FallbackAmount), 1500),
	}})
	return rows
}

// CheckboxRows builds the solution-selection table: always one row per catalog
// entry, checked or not. The active state is purely a projection of the
// subscription; rows are never omitted.
func CheckboxRows(cfg *models.OrderConfig) []models.Row {
	rows := []models.Row{{
		Header: true,
		Cells: []models.Cell{
			headerCell("", 500),
			headerCell("Solution", 2500),
			headerCell("Description", contentWidth-3000),
		},
	}}

	for _, e := range catalog.Entries() {
		active := entryActive(e, cfg)
		mark := uncheckedMark
		textColor := colorInactiveText
		bg := colorInactiveBg
		if active {
			mark = checkedMark
			textColor = ""
			bg = ""
		}
		rows = append(rows, models.Row{Cells: []models.Cell{
			{Text: mark, Width: 500, Align: models.AlignCenter, Color: textColor, Bg: bg, Size: 22},
			{Text: e.DisplayName, Width: 2500, Bold: active, Color: textColor, Bg: bg},
			{Text: e.Description, Width: contentWidth - 3000, Color: textColor, Bg: bg},
		}})
	}
	return rows
}
