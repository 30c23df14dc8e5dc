package compose

import "bitbucket.org/deskea/bdc_backend/models"

// Page layout in DXA (A4, 1 inch margins) and the document palette.
// These mirror the print layout of the signed order forms; do not tweak per config.
const (
	pageWidth    = 11906
	pageMargin   = 1440
	contentWidth = pageWidth - 2*pageMargin
)

const (
	colorPrimary      = "1B3A5C"
	colorSecondary    = "2E75B6"
	colorText         = "333333"
	colorLightGray    = "F2F4F7"
	colorMedGray      = "D9DEE4"
	colorWhite        = "FFFFFF"
	colorLightBlue    = "E8F0FE"
	colorInactiveText = "AAAAAA"
	colorInactiveBg   = "F8F8F8"
)

// Literal placeholders for missing fields. These exact strings are part of the
// external contract: reviewers search for them when filling drafts by hand.
const (
	FallbackText    = "__"
	FallbackAmount  = "__ €"
	FallbackSummary = "________ €"
	FallbackDate    = "__ / __ / ____"
	FallbackUsers   = "[nombre] licences nommées à la date d’effet."
	FallbackSession = "__ €/sess."
	FallbackDaily   = "__ €/j"
	FallbackAn2     = "__ € HT"

	checkedMark   = "☑"
	uncheckedMark = "☐"
)

func textCell(text string, width int) models.Cell {
	return models.Cell{Text: text, Width: width}
}

func headerCell(text string, width int) models.Cell {
	return models.Cell{
		Text:  text,
		Width: width,
		Bold:  true,
		Color: colorWhite,
		Bg:    colorPrimary,
		Align: models.AlignCenter,
	}
}

const labelColWidth = 3200

// dataRow is the two-column "label: value" row used by every summary grid.
func dataRow(label, value string) models.Row {
	return models.Row{Cells: []models.Cell{
		{Text: label, Width: labelColWidth, Bold: true, Bg: colorLightGray},
		{Text: value, Width: contentWidth - labelColWidth},
	}}
}

func dataRowBg(label, value, labelBg, valueBg string) models.Row {
	return models.Row{Cells: []models.Cell{
		{Text: label, Width: labelColWidth, Bold: true, Bg: labelBg, Color: colorWhite},
		{Text: value, Width: contentWidth - labelColWidth, Bg: valueBg},
	}}
}

func slaRow(level, desc, responseTime, resolutionTime string) models.Row {
	return models.Row{Cells: []models.Cell{
		{Text: level, Width: 1800, Bold: true, Align: models.AlignCenter},
		{Text: desc, Width: contentWidth - 4800},
		{Text: responseTime, Width: 1500, Bold: true, Align: models.AlignCenter},
		{Text: resolutionTime, Width: 1500, Bold: true, Align: models.AlignCenter},
	}}
}
