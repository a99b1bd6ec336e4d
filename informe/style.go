package informe

import (
	"io"
	"maps"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeptools/informes/pdfs"
)

// Style holds every visual constant of a report. One value configures a
// whole document; nothing visual is hard-coded in the layout code.
type Style struct {
	Name        string `yaml:"-" json:"name"`
	Disclaimer  string `yaml:"disclaimer" json:"disclaimer"`
	DefaultUser string `yaml:"default_user" json:"default_user"`

	TitleFont     pdfs.Font `yaml:"title_font" json:"title_font"`
	InfoFont      pdfs.Font `yaml:"info_font" json:"info_font"` // filter and count lines under the header
	CardTitleFont pdfs.Font `yaml:"card_title_font" json:"card_title_font"`
	LabelFont     pdfs.Font `yaml:"label_font" json:"label_font"`
	ValueFont     pdfs.Font `yaml:"value_font" json:"value_font"`
	NoteFont      pdfs.Font `yaml:"note_font" json:"note_font"`
	FooterFont    pdfs.Font `yaml:"footer_font" json:"footer_font"`
	ChromeFont    pdfs.Font `yaml:"chrome_font" json:"chrome_font"` // running header, page numbers

	TextColor      pdfs.Color `yaml:"text_color" json:"text_color"`
	RuleColor      pdfs.Color `yaml:"rule_color" json:"rule_color"`
	CardHeaderFill pdfs.Color `yaml:"card_header_fill" json:"card_header_fill"`
	LabelFill      pdfs.Color `yaml:"label_fill" json:"label_fill"`
	BorderColor    pdfs.Color `yaml:"border_color" json:"border_color"`
	LineWidth      float64    `yaml:"line_width" json:"line_width"`

	HeaderTop    float64 `yaml:"header_top" json:"header_top"`
	LogoHeight   float64 `yaml:"logo_height" json:"logo_height"`
	HeaderHeight float64 `yaml:"header_height" json:"header_height"` // logo top to rule
	HeaderGap    float64 `yaml:"header_gap" json:"header_gap"`

	LabelWidth       float64    `yaml:"label_width" json:"label_width"`
	MinLabelSize     float64    `yaml:"min_label_size" json:"min_label_size"`
	MinRowHeight     float64    `yaml:"min_row_height" json:"min_row_height"`
	CardHeaderHeight float64    `yaml:"card_header_height" json:"card_header_height"`
	CellPaddingX     float64    `yaml:"cell_padding_x" json:"cell_padding_x"`
	CellPaddingY     float64    `yaml:"cell_padding_y" json:"cell_padding_y"`
	ValueLineHeight  float64    `yaml:"value_line_height" json:"value_line_height"`
	CardGap          float64    `yaml:"card_gap" json:"card_gap"`
	TitleAlign       pdfs.Align `yaml:"title_align" json:"title_align"`

	InfoLineHeight   float64 `yaml:"info_line_height" json:"info_line_height"`
	NoteLineHeight   float64 `yaml:"note_line_height" json:"note_line_height"`
	FooterGap        float64 `yaml:"footer_gap" json:"footer_gap"`
	FooterLineHeight float64 `yaml:"footer_line_height" json:"footer_line_height"`

	PageBorder       bool    `yaml:"page_border" json:"page_border"`
	BorderInset      float64 `yaml:"border_inset" json:"border_inset"`
	RunningHeader    bool    `yaml:"running_header" json:"running_header"`
	PageNumbers      bool    `yaml:"page_numbers" json:"page_numbers"`
	PageNumberFormat string  `yaml:"page_number_format" json:"page_number_format"` // %d = page, %s = total

	DateLayout   string `yaml:"date_layout" json:"date_layout"`
	TimeLayout   string `yaml:"time_layout" json:"time_layout"`
	IssuedFormat string `yaml:"issued_format" json:"issued_format"` // %s date, %s time
	UserFormat   string `yaml:"user_format" json:"user_format"`
}

const (
	StyleClasico  = "clasico"
	StyleSencillo = "sencillo"
	StyleCompacto = "compacto"
)

// DefaultStyle is the "clasico" preset: Times, grey card headers, page
// border and page numbers on every page.
func DefaultStyle() Style {
	times := func(style string, size float64) pdfs.Font {
		return pdfs.Font{Family: "Times", Style: style, Size: size}
	}
	return Style{
		Name:        StyleClasico,
		Disclaimer:  "Documento generado automáticamente por Subdirección Cobertura de Cargos",
		DefaultUser: "Usuario del Sistema",

		TitleFont:     times("B", 16),
		InfoFont:      times("B", 11),
		CardTitleFont: times("B", 11),
		LabelFont:     times("B", 9),
		ValueFont:     times("", 9),
		NoteFont:      times("", 10),
		FooterFont:    times("", 9),
		ChromeFont:    times("I", 8),

		TextColor:      pdfs.Black,
		RuleColor:      pdfs.Black,
		CardHeaderFill: pdfs.MustParseColor("#e0e0e0"),
		LabelFill:      pdfs.MustParseColor("#f5f5f5"),
		BorderColor:    pdfs.MustParseColor("#808080"),
		LineWidth:      1,

		HeaderTop:    40,
		LogoHeight:   50,
		HeaderHeight: 70,
		HeaderGap:    12,

		LabelWidth:       150,
		MinLabelSize:     6,
		MinRowHeight:     16,
		CardHeaderHeight: 20,
		CellPaddingX:     6,
		CellPaddingY:     3,
		ValueLineHeight:  10,
		CardGap:          8,
		TitleAlign:       pdfs.AlignLeft,

		InfoLineHeight:   14,
		NoteLineHeight:   12,
		FooterGap:        24,
		FooterLineHeight: 11,

		PageBorder:       true,
		BorderInset:      20,
		PageNumbers:      true,
		PageNumberFormat: "Página %d de %s",

		DateLayout:   "02/01/06",
		TimeLayout:   "15:04:05",
		IssuedFormat: "Emisión: %s, %s",
		UserFormat:   "Usuario: %s",
	}
}

func sencilloStyle() Style {
	s := DefaultStyle()
	s.Name = StyleSencillo
	s.PageBorder = false
	s.PageNumbers = false
	return s
}

func compactoStyle() Style {
	s := DefaultStyle()
	s.Name = StyleCompacto
	s.CardTitleFont.Size = 10
	s.LabelFont.Size = 8
	s.ValueFont.Size = 8
	s.MinRowHeight = 14
	s.CardHeaderHeight = 17
	s.CellPaddingY = 2
	s.ValueLineHeight = 9
	s.CardGap = 5
	s.RunningHeader = true
	return s
}

// NewStyleStore returns a store holding the built-in presets
func NewStyleStore() *pdfs.TemplateStore[Style] {
	store := pdfs.NewTemplateStore[Style]()
	for _, s := range []Style{DefaultStyle(), sencilloStyle(), compactoStyle()} {
		store.Store(s.Name, s)
	}
	return store
}

// Validate checks the style against the page it will be used on
func (s Style) Validate(g Geometry) error {
	fonts := map[string]pdfs.Font{
		"title_font": s.TitleFont, "info_font": s.InfoFont, "card_title_font": s.CardTitleFont,
		"label_font": s.LabelFont, "value_font": s.ValueFont, "note_font": s.NoteFont,
		"footer_font": s.FooterFont, "chrome_font": s.ChromeFont,
	}
	for _, name := range slices.Sorted(maps.Keys(fonts)) {
		f := fonts[name]
		if f.Family == "" || f.Size <= 0 {
			return errors.Errorf("style %q: %s needs a family and a positive size", s.Name, name)
		}
	}
	rowMin := max(s.MinRowHeight, s.ValueLineHeight+2*s.CellPaddingY)
	switch {
	case s.LabelWidth <= 2*s.CellPaddingX || s.LabelWidth >= g.ContentWidth-2*s.CellPaddingX:
		return errors.Errorf("style %q: label width %.2f leaves no room for values", s.Name, s.LabelWidth)
	case s.MinLabelSize <= 0 || s.MinLabelSize > s.LabelFont.Size:
		return errors.Errorf("style %q: min label size %.2f must be in (0, %.2f]", s.Name, s.MinLabelSize, s.LabelFont.Size)
	case s.ValueLineHeight <= 0 || s.InfoLineHeight <= 0 || s.NoteLineHeight <= 0 || s.FooterLineHeight <= 0:
		return errors.Errorf("style %q: line heights must be positive", s.Name)
	case s.CellPaddingX < 0 || s.CellPaddingY < 0 || s.CardGap < 0 || s.FooterGap < 0 || s.HeaderGap < 0:
		return errors.Errorf("style %q: paddings and gaps cannot be negative", s.Name)
	case s.CardHeaderHeight <= 0 || s.CardHeaderHeight+rowMin > g.UsableHeight():
		return errors.Errorf("style %q: a card header plus one row must fit on a page", s.Name)
	case s.HeaderTop+s.HeaderHeight+s.HeaderGap >= g.PageBreakThreshold:
		return errors.Errorf("style %q: header block does not fit above the page break threshold", s.Name)
	}
	switch s.TitleAlign {
	case pdfs.AlignLeft, pdfs.AlignCenter, pdfs.AlignRight:
	default:
		return errors.Errorf("style %q: unknown title alignment %q", s.Name, s.TitleAlign)
	}
	return nil
}

type styleFile struct {
	Styles map[string]yaml.Node `yaml:"styles"`
}

type styleBase struct {
	Base string `yaml:"base"`
}

// LoadStyles reads additional presets from YAML and puts them in store.
// Each entry names a `base` preset (default "clasico") and overrides
// any of its fields:
//
//	styles:
//	  institucional:
//	    base: sencillo
//	    disclaimer: Documento generado por ...
//	    page_numbers: true
func LoadStyles(r io.Reader, store *pdfs.TemplateStore[Style]) error {
	var file styleFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrap(err, "decode styles")
	}
	resolving := map[string]bool{}
	var resolve func(name string) (Style, error)
	resolve = func(name string) (Style, error) {
		node, inFile := file.Styles[name]
		if !inFile {
			if s, ok := store.Get(name); ok {
				return s, nil
			}
			return Style{}, errors.Errorf("unknown base style %q", name)
		}
		if resolving[name] {
			return Style{}, errors.Errorf("style %q inherits from itself", name)
		}
		resolving[name] = true
		defer delete(resolving, name)

		var b styleBase
		if err := node.Decode(&b); err != nil {
			return Style{}, errors.Wrapf(err, "style %q", name)
		}
		if b.Base == "" {
			b.Base = StyleClasico
		}
		if b.Base == name {
			return Style{}, errors.Errorf("style %q inherits from itself", name)
		}
		s, err := resolve(b.Base)
		if err != nil {
			return Style{}, errors.Wrapf(err, "style %q", name)
		}
		if err = node.Decode(&s); err != nil {
			return Style{}, errors.Wrapf(err, "style %q", name)
		}
		s.Name = name
		return s, nil
	}

	loaded := make(map[string]Style, len(file.Styles))
	for _, name := range slices.Sorted(maps.Keys(file.Styles)) {
		s, err := resolve(name)
		if err != nil {
			return err
		}
		loaded[name] = s
	}
	for name, s := range loaded {
		store.Store(name, s)
	}
	return nil
}
