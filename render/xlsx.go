package render

import (
	"fmt"
	"strings"

	"bitbucket.org/deskea/bdc_backend/models"
	"github.com/xuri/excelize/v2"
)

const (
	defaultTextColor = "333333"
	borderColor      = "D9DEE4"
	maxSheetCols     = 6
	// Rough conversion from DXA cell widths to spreadsheet column widths.
	dxaPerColUnit = 110.0
)

// XLSX renders the document tree as a spreadsheet workbook. Every page break
// starts a new worksheet (named after the heading that follows it), so each
// annex lands on its own tab; inside a sheet node order is row order.
type XLSX struct{}

func NewXLSX() *XLSX {
	return &XLSX{}
}

func (x *XLSX) Extension() string {
	return "xlsx"
}

type styleKey struct {
	bold     bool
	italic   bool
	size     float64
	color    string
	bg       string
	align    string
	bordered bool
}

type xlsxWriter struct {
	f         *excelize.File
	sheet     string
	row       int
	styles    map[styleKey]int
	colWidths map[int]float64 // per current sheet, col index -> width
}

func (x *XLSX) Render(doc *models.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	f := excelize.NewFile()
	defer f.Close()

	w := &xlsxWriter{f: f, styles: map[styleKey]int{}}
	if err := w.startSheet("Bon de Commande", doc); err != nil {
		return nil, err
	}

	nodes := doc.Nodes
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		switch n.Type {
		case models.NodePageBreak:
			name := fmt.Sprintf("Page %d", len(f.GetSheetList())+1)
			if next := followingHeading(nodes, i); next != "" {
				name = sheetName(next)
			}
			if err := w.startSheet(name, doc); err != nil {
				return nil, err
			}
		case models.NodeHeading:
			if err := w.writeHeading(n.Heading); err != nil {
				return nil, err
			}
		case models.NodeParagraph:
			if err := w.writeParagraph(n.Paragraph); err != nil {
				return nil, err
			}
		case models.NodeTable:
			if err := w.writeTable(n.Table); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown node type %q", n.Type)
		}
	}
	if err := w.applyColWidths(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *xlsxWriter) startSheet(name string, doc *models.Document) error {
	if err := w.applyColWidths(); err != nil {
		return err
	}
	if w.sheet == "" {
		// Reuse the default sheet for the first page.
		if err := w.f.SetSheetName(w.f.GetSheetName(0), name); err != nil {
			return err
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return err
	}
	w.sheet = name
	w.row = 1
	w.colWidths = map[int]float64{}

	return w.f.SetHeaderFooter(w.sheet, &excelize.HeaderFooterOptions{
		OddHeader: "&L" + doc.Header,
		OddFooter: "&C" + doc.Footer + " | Page &P",
	})
}

func (w *xlsxWriter) writeHeading(h *models.Heading) error {
	color := "1B3A5C"
	size := 14.0
	if h.Level >= 2 {
		color = "2E75B6"
		size = 12.0
	}
	style, err := w.style(styleKey{bold: true, size: size, color: color, align: "left"})
	if err != nil {
		return err
	}
	if err := w.writeMergedText(h.Text, style); err != nil {
		return err
	}
	w.row++ // spacing line under the heading
	return nil
}

func (w *xlsxWriter) writeParagraph(p *models.Paragraph) error {
	color := p.Color
	if color == "" {
		color = defaultTextColor
	}
	size := 10.0
	if p.Size > 0 {
		size = float64(p.Size) / 2
	}
	align := "left"
	if p.Align == models.AlignCenter {
		align = "center"
	}
	style, err := w.style(styleKey{bold: p.Bold, italic: p.Italic, size: size, color: color, align: align})
	if err != nil {
		return err
	}
	return w.writeMergedText(p.Text, style)
}

func (w *xlsxWriter) writeMergedText(text string, style int) error {
	start, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(maxSheetCols, w.row)
	if err != nil {
		return err
	}
	if err := w.f.MergeCell(w.sheet, start, end); err != nil {
		return err
	}
	if err := w.f.SetCellValue(w.sheet, start, text); err != nil {
		return err
	}
	if err := w.f.SetCellStyle(w.sheet, start, end, style); err != nil {
		return err
	}
	if strings.Contains(text, "\n") {
		lines := strings.Count(text, "\n") + 1
		if err := w.f.SetRowHeight(w.sheet, w.row, float64(15*lines)); err != nil {
			return err
		}
	}
	w.row++
	return nil
}

func (w *xlsxWriter) writeTable(t *models.Table) error {
	for _, row := range t.Rows {
		maxLines := 1
		for col, cell := range row.Cells {
			name, err := excelize.CoordinatesToCellName(col+1, w.row)
			if err != nil {
				return err
			}
			if err := w.f.SetCellValue(w.sheet, name, cell.Text); err != nil {
				return err
			}
			style, err := w.cellStyle(cell)
			if err != nil {
				return err
			}
			if err := w.f.SetCellStyle(w.sheet, name, name, style); err != nil {
				return err
			}
			if cell.Width > 0 {
				width := float64(cell.Width) / dxaPerColUnit
				if width > w.colWidths[col] {
					w.colWidths[col] = width
				}
			}
			if lines := strings.Count(cell.Text, "\n") + 1; lines > maxLines {
				maxLines = lines
			}
		}
		if maxLines > 1 {
			if err := w.f.SetRowHeight(w.sheet, w.row, float64(15*maxLines)); err != nil {
				return err
			}
		}
		w.row++
	}
	w.row++ // blank spacing line after every table
	return nil
}

func (w *xlsxWriter) cellStyle(c models.Cell) (int, error) {
	color := c.Color
	if color == "" {
		color = defaultTextColor
	}
	size := 9.0
	if c.Size > 0 {
		size = float64(c.Size) / 2
	}
	align := "left"
	if c.Align == models.AlignCenter {
		align = "center"
	}
	return w.style(styleKey{
		bold:     c.Bold,
		size:     size,
		color:    color,
		bg:       c.Bg,
		align:    align,
		bordered: true,
	})
}

func (w *xlsxWriter) style(k styleKey) (int, error) {
	if id, ok := w.styles[k]; ok {
		return id, nil
	}
	s := &excelize.Style{
		Font: &excelize.Font{
			Bold:   k.bold,
			Italic: k.italic,
			Size:   k.size,
			Color:  k.color,
		},
		Alignment: &excelize.Alignment{
			Horizontal: k.align,
			Vertical:   "center",
			WrapText:   true,
		},
	}
	if k.bg != "" {
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{k.bg}}
	}
	if k.bordered {
		s.Border = []excelize.Border{
			{Type: "left", Color: borderColor, Style: 1},
			{Type: "right", Color: borderColor, Style: 1},
			{Type: "top", Color: borderColor, Style: 1},
			{Type: "bottom", Color: borderColor, Style: 1},
		}
	}
	id, err := w.f.NewStyle(s)
	if err != nil {
		return 0, err
	}
	w.styles[k] = id
	return id, nil
}

func (w *xlsxWriter) applyColWidths() error {
	if w.sheet == "" {
		return nil
	}
	for col, width := range w.colWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if width < 6 {
			width = 6
		}
		if err := w.f.SetColWidth(w.sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func followingHeading(nodes []models.Node, i int) string {
	for j := i + 1; j < len(nodes); j++ {
		switch nodes[j].Type {
		case models.NodeHeading:
			return nodes[j].Heading.Text
		case models.NodePageBreak:
			return ""
		}
	}
	return ""
}

// sheetName derives a worksheet tab name from a heading:
// "Annexe 1 – Grille tarifaire détaillée" -> "Annexe 1".
func sheetName(heading string) string {
	name, _, _ := strings.Cut(heading, "–")
	name = strings.TrimSpace(name)
	for _, bad := range []string{":", "\\", "/", "?", "*", "[", "]"} {
		name = strings.ReplaceAll(name, bad, " ")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Annexe"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}
