package reports

import (
	"fmt"

	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/records"
)

const KindTitularizaciones = "titularizaciones"

func Titularizaciones() *Template[records.Titularizacion] {
	return &Template[records.Titularizacion]{
		Meta: Meta{
			Kind:         KindTitularizaciones,
			Route:        "titularizaciones/registros/report",
			Module:       "TITULARIZACIONES",
			Title:        "INFORME DE TITULARIZACIONES",
			CountLabel:   "registros",
			EmptyMessage: "No se encontraron registros para los filtros aplicados.",
			LegacyKey:    "registros",
		},
		Card: titularizacionCard,
	}
}

func titularizacionCard(i int, t records.Titularizacion) informe.Card {
	c := informe.NewCard(fmt.Sprintf("%d. Expediente N° %s", i+1, t.Expediente),
		informe.FieldRow{Label: "Docente", Value: docente(t.Apellido, t.Nombre, t.Dni.ForceValue())},
		informe.FieldRow{Label: "Establecimiento", Value: t.Establecimiento},
		informe.FieldRow{Label: "Localidad / Departamento", Value: t.Localidad + " / " + t.Departamento},
		informe.FieldRow{Label: "Junta de Clasificación", Value: t.JuntaClasificacion},
		informe.FieldRow{Label: "Titularizar en", Value: t.TitularizarEn},
	)
	c.AddOptional("Renuncia a", t.RenunciaA.ForceValue())
	return c
}
