package config

import "bitbucket.org/deskea/bdc_backend/models"

// Contractual defaults applied field by field during normalization.
// A field supplied in the input config always wins over its default.

func DefaultDeskea() models.PartyConfig {
	return models.PartyConfig{
		RaisonSociale: "Groupe Tersea SAS",
		Adresse:       "1 Chemin de la Loge – 31100 Toulouse",
		Rcs:           "RCS Toulouse 443 061 841",
		Representant:  "Sébastien Monnier, Président",
	}
}

func DefaultContrat() models.ContractConfig {
	return models.ContractConfig{
		Duree:       "12 mois",
		Hebergement: "Cloud sécurisé en Europe (OVHcloud / AWS / Google Cloud), conforme RGPD.",
	}
}

func DefaultFinancier() models.FinancialConfig {
	return models.FinancialConfig{
		Facturation: "mensuelle à terme à échoir",
		Paiement:    "30 jours date de facture, par virement ou prélèvement SEPA",
	}
}
