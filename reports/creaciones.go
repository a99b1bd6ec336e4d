package reports

import (
	"fmt"

	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/records"
)

const KindCreaciones = "creaciones"

func Creaciones() *Template[records.Expediente] {
	return &Template[records.Expediente]{
		Meta: Meta{
			Kind:         KindCreaciones,
			Route:        "expedientes/report",
			Module:       "CREACIONES",
			Title:        "INFORME DE CREACIONES",
			CountLabel:   "expedientes",
			EmptyMessage: "No se encontraron expedientes para los filtros aplicados.",
			LegacyKey:    "expedientes",
		},
		Card: creacionCard,
	}
}

func creacionCard(i int, e records.Expediente) informe.Card {
	c := informe.NewCard(fmt.Sprintf("%d. Expediente N° %s", i+1, e.Expediente))
	c.Add("Tipo de Solicitud", e.Solicita)
	c.Add("Establecimiento", e.Establecimiento)
	c.Add("Ubicación", e.Ubicacion)
	c.AddOptional("Observaciones", e.Comentario.ForceValue())
	return c
}
