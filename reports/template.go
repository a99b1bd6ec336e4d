// Package reports maps record kinds to informe documents.
package reports

import (
	"context"
	"fmt"
	"log"

	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/records"
)

// Meta describes a report kind
type Meta struct {
	Kind            string // filename segment and registry key
	Route           string // path under /api/
	Module          string // token module allowed to request it
	Title           string
	Subtitle        string
	CountLabel      string // "Total de <CountLabel>: N"
	EmptyMessage    string
	LegacyKey       string // body key holding the records before "records"
	LegacyFilterKey string // body key holding the filter label before "filterLabel"
}

// Report is a Template with its record type erased, for registries and
// handlers
type Report interface {
	Describe() Meta
	// RenderJSON renders a request body. An unreadable body is logged and
	// rendered as the empty report. user is used when the body names none.
	RenderJSON(ctx context.Context, rd *Renderer, body []byte, user string) (*informe.Document, error)
	// RenderSource loads records matching filter from the bound source
	RenderSource(ctx context.Context, rd *Renderer, filter, user string) (*informe.Document, error)
	HasSource() bool
}

// Template turns records of one kind into cards
type Template[R any] struct {
	Meta
	Card   func(i int, r R) informe.Card
	Source records.Source[R] // optional
}

// Ensure Template implements Report
var _ Report = (*Template[records.Expediente])(nil)

func (t *Template[R]) Describe() Meta {
	return t.Meta
}

func (t *Template[R]) HasSource() bool {
	return t.Source != nil
}

// Info returns the lines printed under the header rule
func (t *Template[R]) Info(req Request[R]) []string {
	var info []string
	if t.Subtitle != "" {
		info = append(info, t.Subtitle)
	}
	if req.FilterLabel != "" {
		info = append(info, "Filtro: "+req.FilterLabel)
	}
	if n := len(req.Records); n > 0 {
		info = append(info, fmt.Sprintf("Total de %s: %d", t.CountLabel, n))
	}
	return info
}

func (t *Template[R]) Cards(recs []R) []informe.Card {
	cards := make([]informe.Card, len(recs))
	for i, r := range recs {
		cards[i] = t.Card(i, r)
	}
	return cards
}

func (t *Template[R]) Render(ctx context.Context, rd *Renderer, req Request[R]) (*informe.Document, error) {
	if rd.MaxRecords > 0 && len(req.Records) > rd.MaxRecords {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyRecords, len(req.Records), rd.MaxRecords)
	}
	title := t.Title
	if req.Title != "" {
		title = req.Title
	}
	return rd.render(ctx, page{
		kind:     t.Kind,
		title:    title,
		info:     t.Info(req),
		userName: req.UserName,
		cards:    t.Cards(req.Records),
		empty:    t.EmptyMessage,
	})
}

func (t *Template[R]) RenderJSON(ctx context.Context, rd *Renderer, body []byte, user string) (*informe.Document, error) {
	req, err := t.Decode(body)
	if err != nil {
		log.Printf("[WARN][reports] %v", err)
	}
	if req.UserName == "" {
		req.UserName = user
	}
	return t.Render(ctx, rd, req)
}

func (t *Template[R]) RenderSource(ctx context.Context, rd *Renderer, filter, user string) (*informe.Document, error) {
	if t.Source == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoSource, t.Kind)
	}
	limit := 0
	if rd.MaxRecords > 0 {
		limit = rd.MaxRecords + 1 // one over, so Render can refuse instead of truncating
	}
	recs, err := t.Source.List(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("reports: %s: %w", t.Kind, err)
	}
	return t.Render(ctx, rd, Request[R]{FilterLabel: filter, UserName: user, Records: recs})
}
