package pdfs

import "strings"

type PaperSize struct {
	Name   string
	Width  float64 // in `pt` (1" = 72pts)
	Height float64 // in `pt`
}

var (
	LetterSize = PaperSize{Name: "Letter", Width: 612, Height: 792}         // 8.5" x 11"
	LegalSize  = PaperSize{Name: "Legal", Width: 612, Height: 1008}         // 8.5" x 14"
	A4Size     = PaperSize{Name: "A4", Width: 595.27559, Height: 841.88976} // 210mm x 297mm
)

var paperSizes = map[string]PaperSize{
	"letter": LetterSize,
	"legal":  LegalSize,
	"a4":     A4Size,
}

// PaperSizeByName looks up a known paper size, case-insensitively
func PaperSizeByName(name string) (PaperSize, bool) {
	p, ok := paperSizes[strings.ToLower(name)]
	return p, ok
}
