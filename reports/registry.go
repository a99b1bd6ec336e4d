package reports

import (
	"fmt"

	"github.com/zeptools/informes/db/sqldb"
	"github.com/zeptools/informes/pdfs"
	"github.com/zeptools/informes/records"
)

// Registry holds the report kinds a service exposes, keyed by Kind
type Registry struct {
	*pdfs.TemplateStore[Report]
}

func NewRegistry(reports ...Report) *Registry {
	r := &Registry{pdfs.NewTemplateStore[Report]()}
	for _, rep := range reports {
		r.Store(rep.Describe().Kind, rep)
	}
	return r
}

// Standard returns the three built-in kinds. With a non-nil client each
// one can also load its records from the database.
func Standard(client sqldb.Client) *Registry {
	cre, cob, tit := Creaciones(), Cobertura(), Titularizaciones()
	if client != nil {
		cre.Source = records.NewSQLSource[records.Expediente](client, records.StmtExpedientes)
		cob.Source = records.NewSQLSource[records.CoberturaDetalle](client, records.StmtCoberturaDetalles)
		tit.Source = records.NewSQLSource[records.Titularizacion](client, records.StmtTitularizaciones)
	}
	return NewRegistry(cre, cob, tit)
}

func (r *Registry) Lookup(kind string) (Report, error) {
	rep, ok := r.Get(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return rep, nil
}
