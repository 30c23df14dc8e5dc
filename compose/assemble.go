package compose

import (
	"strings"

	"bitbucket.org/deskea/bdc_backend/catalog"
	"bitbucket.org/deskea/bdc_backend/models"
	"github.com/shopspring/decimal"
)

// Assemble builds the complete document tree from a normalized configuration
// and the row builders. Section order is canonical and never depends on the
// configuration; only in-table row counts vary.
func Assemble(cfg *models.OrderConfig) (*models.Document, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, assemblyErrorf("normalized configuration is missing the client identity")
	}

	fin := deriveFinancials(cfg)

	var nodes []models.Node
	add := func(n models.Node) { nodes = append(nodes, n) }

	// Cover block.
	add(models.ParagraphNode(models.Paragraph{Text: "DESKEA", Align: models.AlignCenter, Bold: true, Size: 44, Color: colorPrimary}))
	add(models.ParagraphNode(models.Paragraph{Text: "BON DE COMMANDE", Align: models.AlignCenter, Bold: true, Size: 36, Color: colorPrimary}))
	add(models.ParagraphNode(models.Paragraph{Text: "Référence : " + cfg.BdcRef, Align: models.AlignCenter, Color: colorSecondary}))
	add(models.ParagraphNode(models.Paragraph{Text: "Plateforme SaaS – Relation Client & Intelligence Artificielle", Align: models.AlignCenter, Italic: true}))

	// Parties.
	half := contentWidth / 2
	add(models.TableNode([]models.Row{
		{Header: true, Cells: []models.Cell{
			headerCell("DESKEA (Groupe Tersea)", half),
			headerCell("CLIENT", half),
		}},
		{Cells: []models.Cell{
			textCell(partyBlock(cfg.Deskea), half),
			textCell(partyBlock(*cfg.Client), half),
		}},
	}))

	add(models.ParagraphNode(models.Paragraph{
		Align: models.AlignJustify,
		Text: "Le Client reconnaît avoir reçu et accepté les Conditions Générales de Deskea (CGV v1.1). " +
			"Le présent Bon de Commande est régi par ces Conditions Générales. En cas de contradiction, " +
			"l’ordre de préséance est : (1) le présent Bon de Commande et ses annexes, (2) les Conditions Générales.",
	}))

	// Main contract terms.
	nbUtilisateurs := cfg.Contrat.NbUtilisateurs
	if nbUtilisateurs == "" {
		nbUtilisateurs = FallbackUsers
	}
	dateEffet := cfg.Contrat.DateEffet
	if dateEffet == "" {
		dateEffet = FallbackDate
	}
	add(models.TableNode([]models.Row{
		dataRow("Date d’effet", dateEffet),
		dataRow("Durée d’engagement", cfg.Contrat.Duree+" à compter de la mise en production.\n"+
			"Renouvellement par tacite reconduction par période(s) équivalente(s), sauf dénonciation avec préavis de 3 mois (LRAR ou e-mail avec AR)."),
		dataRow("Nombre d’Utilisateurs", nbUtilisateurs),
		dataRow("Hébergement", cfg.Contrat.Hebergement),
		dataRow("Contact principal", contactLine(cfg.Contact)),
	}))

	// Subscribed solutions.
	add(models.HeadingNode(1, "Solutions souscrites"))
	add(models.ParagraphNode(models.Paragraph{
		Italic: true,
		Align:  models.AlignJustify,
		Text: "Les solutions cochées ci-dessous sont activées dans le cadre du présent Bon de Commande. " +
			"Les solutions non sélectionnées restent disponibles et pourront être ajoutées par avenant simplifié.",
	}))
	add(models.TableNode(CheckboxRows(cfg)))
	add(models.ParagraphNode(models.Paragraph{
		Align: models.AlignJustify,
		Text: "Clause d’expansion : Toute souscription supplémentaire de licences ou de modules sera régie par " +
			"les conditions tarifaires du présent BDC et fera l’objet d’un avenant simplifié ou d’une commande " +
			"additionnelle signée par les Parties.",
	}))

	// Financial summary.
	add(models.HeadingNode(1, "Synthèse financière"))
	add(models.TableNode([]models.Row{
		dataRow("Abonnement annuel HT", summaryAmount(fin.AbonnementAnnuelHT)),
		dataRow("Prestations de déploiement HT", summaryAmount(fin.DeploiementHT)),
		dataRowBg("TOTAL Année 1 HT", summaryAmount(fin.TotalAn1HT), colorPrimary, colorLightBlue),
		dataRow("Facturation", fin.Facturation),
		dataRow("Paiement", fin.Paiement),
		dataRow("Révision", "Annuelle selon indice Syntec (cf. CGV art. 11.3)"),
	}))
	recurrent := fin.RecurrentAn2HT.String()
	if recurrent == "" {
		recurrent = FallbackAn2
	}
	add(models.ParagraphNode(models.Paragraph{
		Italic: true,
		Text:   "À partir de l’année 2, le montant annuel récurrent est de " + recurrent + ".",
	}))

	// Signatures.
	deskeaName, deskeaTitle := SplitSignatory(cfg.Deskea.Representant)
	clientName, clientTitle := SplitSignatory(cfg.Client.Representant)
	add(models.TableNode([]models.Row{
		{Header: true, Cells: []models.Cell{
			headerCell("Pour Deskea (Groupe Tersea)", half),
			headerCell("Pour le CLIENT", half),
		}},
		{Cells: []models.Cell{
			textCell("Nom : "+deskeaName+"\nFonction : "+deskeaTitle+"\nDate : ____________________________\nSignature :", half),
			textCell("Nom : "+clientName+"\nFonction : "+clientTitle+"\nDate : ____________________________\nSignature et cachet :\n\nMention manuscrite « Bon pour accord »", half),
		}},
	}))

	// Annexe 1 : grille tarifaire.
	add(models.PageBreakNode())
	add(models.HeadingNode(1, "Annexe 1 – Grille tarifaire détaillée"))
	add(models.HeadingNode(2, "A. Licences & Abonnements (récurrent)"))
	add(models.TableNode(PricingRows(cfg)))
	add(models.HeadingNode(2, "B. Prestations de déploiement (non récurrent)"))
	add(models.TableNode(SetupRows(cfg)))

	// Annexe 2 : cahier de déploiement.
	add(models.PageBreakNode())
	add(models.HeadingNode(1, "Annexe 2 – Cahier de Déploiement"))
	add(models.ParagraphNode(models.Paragraph{
		Align: models.AlignJustify,
		Text:  "Cette annexe décrit le périmètre de déploiement de la plateforme Deskea et les prestations associées.",
	}))
	add(models.HeadingNode(2, "1. Périmètre fonctionnel"))
	var dep models.DeploymentConfig
	if cfg.Deploiement != nil {
		dep = *cfg.Deploiement
	}
	add(models.TableNode([]models.Row{
		dataRow("Objectif principal", orPlaceholder(dep.Objectif, "[Décrire en 1-2 phrases]")),
		dataRow("Modules activés", ActiveSlotNames(cfg)),
		dataRow("Volume prévisionnel", orPlaceholder(dep.Volume, "[Nbre utilisateurs, nbre interactions/mois]")),
		dataRow("Systèmes à intégrer", orPlaceholder(dep.Systemes, "[CRM existant, téléphonie, SI client…]")),
	}))
	add(models.HeadingNode(2, "2. Planning prévisionnel"))
	add(models.TableNode([]models.Row{
		{Header: true, Cells: []models.Cell{
			headerCell("Phase", 2500),
			headerCell("Durée estimée", 2000),
			headerCell("Responsable", 2000),
		}},
		planningRow("Cadrage & Kickoff", "[__ semaines]", "Deskea + Client"),
		planningRow("Paramétrage & Intégrations", "[__ semaines]", "Deskea"),
		planningRow("Recette & Tests", "[__ semaines]", "Client (validé par Deskea)"),
		planningRow("Formation", "[__ semaines]", "Deskea"),
		planningRow("Mise en production", "[date cible]", "Deskea + Client"),
		planningRow("Hypercare (support renforcé)", "[__ semaines]", "Deskea"),
	}))
	add(models.HeadingNode(2, "3. Conditions de recette"))
	add(models.ParagraphNode(models.Paragraph{
		Align: models.AlignJustify,
		Text: "La recette sera réputée acquise à l’issue d’une période de dix (10) jours ouvrés après livraison, " +
			"sauf réserves formulées par écrit par le Client. Les réserves mineures ne font pas obstacle à la mise en production.",
	}))

	// Annexe 3 : SLA.
	add(models.PageBreakNode())
	add(models.HeadingNode(1, "Annexe 3 – Engagements de Niveaux de Service (SLA)"))
	add(models.HeadingNode(2, "Disponibilité"))
	add(models.TableNode([]models.Row{
		dataRow("Taux de disponibilité garanti", "99,8 % du temps, hors maintenance programmée et force majeure"),
		dataRow("Calcul", "Mensuel : (Temps total – Temps d’indisponibilité) / Temps total"),
		dataRow("Maintenance programmée", "Préavis 30 jours – max 6 MAJ majeures/an – max 3h/MAJ – max 18h/trimestre"),
		dataRow("Reporting", "Mensuel, envoyé au Client avant le 5 du mois suivant"),
	}))
	add(models.HeadingNode(2, "Garantie de Temps de Rétablissement (GTR)"))
	add(models.ParagraphNode(models.Paragraph{
		Align: models.AlignJustify,
		Text:  "Le Prestataire s’engage à rétablir le service dans les délais ci-dessous, à compter de l’ouverture du ticket d’incident.",
	}))
	add(models.TableNode([]models.Row{
		{Header: true, Cells: []models.Cell{
			headerCell("Niveau", 1800),
			headerCell("Description", contentWidth-4800),
			headerCell("Délai réponse", 1500),
			headerCell("Délai rétabl.", 1500),
		}},
		slaRow("P1 – Critique", "Service totalement indisponible ou dégradé de manière critique pour l’ensemble des utilisateurs.", "1h ouvrée", "4h ouvrées"),
		slaRow("P2 – Majeur", "Fonctionnalité importante indisponible ou gravement dégradée, contournement possible.", "4h ouvrées", "8h ouvrées"),
		slaRow("P3 – Mineur", "Anomalie non bloquante, impact limité sur l’exploitation.", "8h ouvrées", "5 jours ouvrés"),
	}))
	add(models.ParagraphNode(models.Paragraph{
		Italic: true,
		Align:  models.AlignJustify,
		Text: "Les dysfonctionnements imputables au Client (mauvaise utilisation, modification non autorisée, " +
			"défaut de l’environnement Client) sont exclus de la GTR.",
	}))
	add(models.HeadingNode(2, "Support technique"))
	add(models.TableNode([]models.Row{
		dataRow("Canal de support", "support@deskea.com / portail en ligne"),
		dataRow("Horaires", "Lundi à Vendredi, 9h – 18h (heure de Paris)"),
		dataRow("Droit d’audit", "Le Client peut demander des informations complémentaires à tout moment"),
	}))
	add(models.HeadingNode(2, "Réclamations"))
	add(models.ParagraphNode(models.Paragraph{
		Align: models.AlignJustify,
		Text: "Le Client adresse ses réclamations par e-mail à support@deskea.com en précisant : informations de " +
			"facturation, date/heure/durée de l’indisponibilité, et justification. Deskea répond sous 2 jours " +
			"ouvrés. En cas de désaccord, les Parties s’efforceront de trouver un accord amiable.",
	}))

	// Annexe 4 : fiche de traitement RGPD.
	add(models.PageBreakNode())
	add(models.HeadingNode(1, "Annexe 4 – Fiche de Traitement (données à caractère personnel)"))
	add(models.ParagraphNode(models.Paragraph{
		Align: models.AlignJustify,
		Text: "Cette fiche décrit le Traitement confié par le Client (Responsable de traitement) à Deskea " +
			"(Sous-traitant), conformément au DPA figurant en Annexe 1 des Conditions Générales.",
	}))
	add(models.HeadingNode(2, "Description du Traitement"))
	var rgpd models.RgpdConfig
	if cfg.Rgpd != nil {
		rgpd = *cfg.Rgpd
	}
	add(models.TableNode([]models.Row{
		dataRow("Description", orPlaceholder(rgpd.Description, "[Décrire le traitement spécifique]")),
		dataRow("Finalités", "Exécution des Services objet du Contrat"),
		dataRow("Personnes concernées", orPlaceholder(rgpd.Personnes, "[Collaborateurs du Client, clients finaux, prospects…]")),
		dataRow("Catégories de données", orPlaceholder(rgpd.Categories, "[Identité, coordonnées, données de conversation, historique…]")),
		dataRow("Durée de conservation", "Pendant la durée du Contrat + 30 jours après échéance"),
		dataRow("DPO Deskea", orPlaceholder(rgpd.DpoDeskea, "dpo@deskea.com")),
		dataRow("DPO Client", orPlaceholder(rgpd.DpoClient, "[email DPO Client]")),
	}))
	add(models.HeadingNode(2, "Sous-traitants ultérieurs autorisés"))
	add(models.TableNode([]models.Row{
		{Header: true, Cells: []models.Cell{
			headerCell("Sous-traitant", 2000),
			headerCell("Service", 2500),
			headerCell("Localisation", 1500),
			headerCell("Garantie", 1800),
		}},
		subProcessorRow("OVHcloud", "Hébergement", "France", "ISO 27001"),
		subProcessorRow("AWS", "Infrastructure", "UE / EEE", "SOC 2 Type II"),
		subProcessorRow("Google Cloud", "Services IA", "UE / EEE", "ISO 27001"),
	}))

	return &models.Document{
		Ref:    cfg.BdcRef,
		Header: "Bon de Commande Deskea – " + cfg.BdcRef,
		Footer: "Deskea – Groupe Tersea | Confidentiel",
		Nodes:  nodes,
	}, nil
}

func partyBlock(p models.PartyConfig) string {
	return p.RaisonSociale + "\n" + p.Adresse + "\nRCS : " + p.Rcs + "\nReprésenté par : " + p.Representant
}

func contactLine(c models.ContactConfig) string {
	return "Nom : " + orPlaceholder(c.Nom, FallbackText) +
		"  |  Email : " + orPlaceholder(c.Email, FallbackText) +
		"  |  Tél : " + orPlaceholder(c.Tel, FallbackText)
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

func summaryAmount(v models.FlexString) string {
	if v == "" {
		return FallbackSummary
	}
	return v.String()
}

// SplitSignatory splits a "Name, Title" signatory string into display lines.
func SplitSignatory(s string) (name, title string) {
	name, title, _ = strings.Cut(s, ",")
	return strings.TrimSpace(name), strings.TrimSpace(title)
}

// ActiveSlotNames joins the display names of active solutions with " / ",
// in catalog order.
func ActiveSlotNames(cfg *models.OrderConfig) string {
	var names []string
	for _, e := range catalog.Entries() {
		if entryActive(e, cfg) {
			names = append(names, e.SlotName)
		}
	}
	return strings.Join(names, " / ")
}

func planningRow(phase, duration, owner string) models.Row {
	return models.Row{Cells: []models.Cell{
		textCell(phase, 2500), textCell(duration, 2000), textCell(owner, 2000),
	}}
}

func subProcessorRow(name, service, location, guarantee string) models.Row {
	return models.Row{Cells: []models.Cell{
		textCell(name, 2000), textCell(service, 2500), textCell(location, 1500), textCell(guarantee, 1800),
	}}
}

// deriveFinancials fills the summary figures the config left empty when every
// contributing module figure is present and parseable. Anything else keeps the
// placeholder behavior of draft mode.
func deriveFinancials(cfg *models.OrderConfig) models.FinancialConfig {
	fin := cfg.Financier

	recurring, recurringOK := sumActiveAnnualTotals(cfg)
	if fin.AbonnementAnnuelHT == "" && recurringOK {
		fin.AbonnementAnnuelHT = models.FlexString(FormatAmount(recurring))
	}

	deployment, deploymentOK := sumDeploymentCosts(cfg)
	if fin.DeploiementHT == "" && deploymentOK {
		fin.DeploiementHT = models.FlexString(FormatAmount(deployment))
	}

	if fin.TotalAn1HT == "" {
		a, aok := ParseAmount(fin.AbonnementAnnuelHT.String())
		d, dok := ParseAmount(fin.DeploiementHT.String())
		if aok && dok {
			fin.TotalAn1HT = models.FlexString(FormatAmount(a.Add(d)))
		}
	}
	if fin.RecurrentAn2HT == "" {
		if a, ok := ParseAmount(fin.AbonnementAnnuelHT.String()); ok {
			fin.RecurrentAn2HT = models.FlexString(FormatAmount(a) + " HT")
		}
	}
	return fin
}

func sumActiveAnnualTotals(cfg *models.OrderConfig) (decimal.Decimal, bool) {
	sum := decimal.Zero
	count := 0
	for _, e := range catalog.Entries() {
		if !entryActive(e, cfg) {
			continue
		}
		total, ok := ParseAmount(cfg.Solution(e.Slot).TotalAnnuel.String())
		if !ok {
			return decimal.Zero, false
		}
		sum = sum.Add(total)
		count++
	}
	return sum, count > 0
}

func sumDeploymentCosts(cfg *models.OrderConfig) (decimal.Decimal, bool) {
	sum := decimal.Zero
	count := 0
	for _, e := range catalog.Entries() {
		if !entryActive(e, cfg) {
			continue
		}
		sub := cfg.Solution(e.Slot)
		if sub.Setup == "" {
			continue
		}
		fee, ok := ParseAmount(sub.Setup.String())
		if !ok {
			return decimal.Zero, false
		}
		sum = sum.Add(fee)
		count++
	}
	if cfg.Deploiement != nil {
		for _, line := range []*models.DeploymentLine{cfg.Deploiement.Formation, cfg.Deploiement.Integration} {
			if line == nil || line.Total == "" {
				continue
			}
			total, ok := ParseAmount(line.Total.String())
			if !ok {
				return decimal.Zero, false
			}
			sum = sum.Add(total)
			count++
		}
	}
	return sum, count > 0
}
