package models

// Abstract document tree handed to a renderer. Node order is the document order;
// renderers must not reorder or drop nodes, including zero-row tables.

type NodeType string

const (
	NodeHeading   NodeType = "heading"
	NodeParagraph NodeType = "paragraph"
	NodeTable     NodeType = "table"
	NodePageBreak NodeType = "pageBreak"
)

type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignJustify Alignment = "justify"
)

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type Paragraph struct {
	Text   string    `json:"text"`
	Align  Alignment `json:"align,omitempty"`
	Italic bool      `json:"italic,omitempty"`
	Bold   bool      `json:"bold,omitempty"`
	Size   int       `json:"size,omitempty"` // half-points, 0 = body default
	Color  string    `json:"color,omitempty"`
}

// Cell is a backend-agnostic table cell descriptor.
// Width is in twentieths of a point (DXA), matching the page layout constants.
type Cell struct {
	Text  string    `json:"text"`
	Width int       `json:"width,omitempty"`
	Bold  bool      `json:"bold,omitempty"`
	Color string    `json:"color,omitempty"` // hex RGB, no '#'
	Bg    string    `json:"bg,omitempty"`
	Align Alignment `json:"align,omitempty"`
	Size  int       `json:"size,omitempty"`
}

type Row struct {
	Cells  []Cell `json:"cells"`
	Header bool   `json:"header,omitempty"`
}

type Table struct {
	Rows []Row `json:"rows"`
}

// Node is a tagged union; exactly one payload pointer is set for its type.
// PageBreak carries no payload.
type Node struct {
	Type      NodeType   `json:"type"`
	Heading   *Heading   `json:"heading,omitempty"`
	Paragraph *Paragraph `json:"paragraph,omitempty"`
	Table     *Table     `json:"table,omitempty"`
}

func HeadingNode(level int, text string) Node {
	return Node{Type: NodeHeading, Heading: &Heading{Level: level, Text: text}}
}

func ParagraphNode(p Paragraph) Node {
	return Node{Type: NodeParagraph, Paragraph: &p}
}

func TableNode(rows []Row) Node {
	return Node{Type: NodeTable, Table: &Table{Rows: rows}}
}

func PageBreakNode() Node {
	return Node{Type: NodePageBreak}
}

// Document is the fully assembled order form.
type Document struct {
	Ref    string `json:"ref"`
	Header string `json:"header"` // running page header text
	Footer string `json:"footer"`
	Nodes  []Node `json:"nodes"`
}
