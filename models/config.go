package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString accepts both JSON strings and JSON numbers.
// Pricing figures arrive either way ("4500" or 4500) depending on who wrote the config.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// PartyConfig identifies one signatory party of the order form.
type PartyConfig struct {
	RaisonSociale string `json:"raisonSociale" validate:"required"`
	Adresse       string `json:"adresse"`
	Rcs           string `json:"rcs"`
	Representant  string `json:"representant"`
}

type ContractConfig struct {
	Duree          string `json:"duree"`
	Hebergement    string `json:"hebergement"`
	DateEffet      string `json:"dateEffet"`
	NbUtilisateurs string `json:"nbUtilisateurs"`
}

type ContactConfig struct {
	Nom   string `json:"nom"`
	Email string `json:"email"`
	Tel   string `json:"tel"`
}

type FinancialConfig struct {
	Facturation        string     `json:"facturation"`
	Paiement           string     `json:"paiement"`
	AbonnementAnnuelHT FlexString `json:"abonnementAnnuelHT"`
	DeploiementHT      FlexString `json:"deploiementHT"`
	TotalAn1HT         FlexString `json:"totalAn1HT"`
	RecurrentAn2HT     FlexString `json:"recurrentAn2HT"`
}

// Subscription is the per-module order state. All pricing fields are optional;
// missing values surface in the document as fillable placeholders.
type Subscription struct {
	Active       bool       `json:"active"`
	Type         string     `json:"type"` // "expert" switches Assist to the knowledge-base variant
	Volume       FlexString `json:"volume"`
	PrixUnitaire FlexString `json:"prixUnitaire"`
	TotalAnnuel  FlexString `json:"totalAnnuel"`
	Setup        FlexString `json:"setup"`
}

type DeploymentLine struct {
	Qty   FlexString `json:"qty"`
	Pu    FlexString `json:"pu"`
	Total FlexString `json:"total"`
}

type DeploymentConfig struct {
	Objectif    string          `json:"objectif"`
	Volume      string          `json:"volume"`
	Systemes    string          `json:"systemes"`
	Formation   *DeploymentLine `json:"formation"`
	Integration *DeploymentLine `json:"integration"`
}

type RgpdConfig struct {
	Description string `json:"description"`
	Personnes   string `json:"personnes"`
	Categories  string `json:"categories"`
	DpoDeskea   string `json:"dpoDeskea"`
	DpoClient   string `json:"dpoClient"`
}

// OrderConfig is the root input of the generator.
// Deskea, Contrat and Financier carry defaults; Client has none and is mandatory.
type OrderConfig struct {
	Deskea      PartyConfig              `json:"deskea"`
	Client      *PartyConfig             `json:"client" validate:"required"`
	Contrat     ContractConfig           `json:"contrat"`
	Financier   FinancialConfig          `json:"financier"`
	Contact     ContactConfig            `json:"contact"`
	Solutions   map[string]*Subscription `json:"solutions"`
	Deploiement *DeploymentConfig        `json:"deploiement"`
	Rgpd        *RgpdConfig              `json:"rgpd"`
	BdcRef      string                   `json:"bdcRef"`
	OutputPath  string                   `json:"outputPath"`
}

// Solution returns the subscription for a slot, never nil.
func (c *OrderConfig) Solution(slot string) *Subscription {
	if c.Solutions == nil {
		return &Subscription{}
	}
	if sub, ok := c.Solutions[slot]; ok && sub != nil {
		return sub
	}
	return &Subscription{}
}
