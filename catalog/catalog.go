// Package catalog is the fixed registry of Deskea solutions.
// Row builders and the assembler iterate it so table rows always come out in
// the same order, whatever the iteration order of the input mapping.
package catalog

// Variant semantics for slots that expose two mutually exclusive offers.
const (
	VariantNone     = ""         // slot has a single offer
	VariantStandard = "standard" // active unless the subscription asks for expert
	VariantExpert   = "expert"   // active only when subscription type == "expert"
)

type Entry struct {
	Key         string // catalog key, unique
	Slot        string // subscription slot in the config "solutions" mapping
	Variant     string // VariantNone, VariantStandard or VariantExpert
	Ref         string // recurring pricing reference
	Designation string // recurring pricing designation
	SetupRef    string
	SetupLabel  string
	UnitHint    string // placeholder for a missing unit price
	DisplayName string // checkbox table label
	SlotName    string // short name used in "Modules activés"
	Description string
}

var entries = []Entry{
	{
		Key:         "engage",
		Slot:        "engage",
		Ref:         "ENG-001",
		Designation: "Deskea Engage – Voicebot/SMSbot",
		SetupRef:    "SET-ENG",
		SetupLabel:  "Setup Deskea Engage",
		UnitHint:    "__ €/min",
		DisplayName: "Engage",
		SlotName:    "Engage",
		Description: "Agent conversationnel Voix & SMS – Automatisation 24/7 des demandes fréquentes, prise de RDV, qualification d’appels, campagnes de notifications.",
	},
	{
		Key:         "qualify",
		Slot:        "qualify",
		Ref:         "QUA-001",
		Designation: "Deskea Qualify – Routage IA",
		SetupRef:    "SET-QUA",
		SetupLabel:  "Setup Deskea Qualify",
		UnitHint:    "__ €/email",
		DisplayName: "Qualify",
		SlotName:    "Qualify",
		Description: "Qualification et routage automatisés – Analyse IA des emails entrants, identification de la thématique et routage vers l’équipe compétente.",
	},
	{
		Key:         "assist",
		Slot:        "assist",
		Variant:     VariantStandard,
		Ref:         "ASS-001",
		Designation: "Deskea Assist – Rédaction IA",
		SetupRef:    "SET-ASS",
		SetupLabel:  "Setup Deskea Assist",
		UnitHint:    "__ €/util.",
		DisplayName: "Assist",
		SlotName:    "Assist",
		Description: "Assistant conseillers (rédaction IA) – Correction, reformulation, traduction, synthèse, composition et génération de réponses assistées.",
	},
	{
		Key:         "assistExpert",
		Slot:        "assist",
		Variant:     VariantExpert,
		Ref:         "ASS-002",
		Designation: "Deskea Assist – Expert (avec Base de Co.)",
		SetupRef:    "SET-ASS",
		SetupLabel:  "Setup Deskea Assist (Base de Connaissances)",
		UnitHint:    "__ €/util.",
		DisplayName: "  + Base de Co.",
		SlotName:    "Assist",
		Description: "Option Base de Connaissances – Chatbot métier intelligent formé sur les données internes du Client, recherche instantanée.",
	},
	{
		Key:         "evaluateAudio",
		Slot:        "evaluateAudio",
		Ref:         "EVA-001",
		Designation: "Deskea Evaluate – Audio",
		SetupRef:    "SET-EVA",
		SetupLabel:  "Setup Deskea Evaluate Audio",
		UnitHint:    "__ €/min",
		DisplayName: "Evaluate – Audio",
		SlotName:    "Evaluate Audio",
		Description: "Analyse conversationnelle Audio – Transcription, résumés, quality monitoring (auto/hybride/manuel), voix du client, tableaux de bord.",
	},
	{
		Key:         "evaluateMessages",
		Slot:        "evaluateMessages",
		Ref:         "EVA-002",
		Designation: "Deskea Evaluate – Messages",
		SetupRef:    "SET-EVM",
		SetupLabel:  "Setup Deskea Evaluate Messages",
		UnitHint:    "__ €/msg",
		DisplayName: "Evaluate – Messages",
		SlotName:    "Evaluate Messages",
		Description: "Analyse conversationnelle Écrite – Mêmes fonctionnalités que Audio, appliquées aux conversations écrites (email, chat, réseaux sociaux).",
	},
}

// Entries returns the catalog in canonical order. Callers must not mutate it.
func Entries() []Entry {
	return entries
}

func Len() int {
	return len(entries)
}

func Lookup(key string) (Entry, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}
