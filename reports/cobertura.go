package reports

import (
	"fmt"

	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/records"
)

const KindCobertura = "cobertura"

func Cobertura() *Template[records.CoberturaDetalle] {
	return &Template[records.CoberturaDetalle]{
		Meta: Meta{
			Kind:            KindCobertura,
			Route:           "cobertura/detalles/report",
			Module:          "COBERTURA",
			Title:           "INFORME DE COBERTURA DE CARGOS",
			CountLabel:      "registros",
			EmptyMessage:    "No se encontraron registros para los filtros aplicados.",
			LegacyKey:       "detalles",
			LegacyFilterKey: "establecimiento",
		},
		Card: coberturaCard,
	}
}

func coberturaCard(i int, d records.CoberturaDetalle) informe.Card {
	return informe.NewCard(fmt.Sprintf("%d. %s", i+1, d.Establecimiento),
		informe.FieldRow{Label: "Llamado", Value: fmt.Sprintf("%s | Tipo: %s | Fecha: %s", d.Llamado, d.Tipo, d.Fecha)},
		informe.FieldRow{Label: "Región / Localidad", Value: d.Region + " / " + d.Localidad},
		informe.FieldRow{Label: "Nivel / Carácter", Value: d.Nivel + " / " + d.Caracter},
		informe.FieldRow{Label: "Descripción", Value: d.Descripcion},
		informe.FieldRow{Label: "Docente", Value: docente(d.Apellido, d.Nombre, d.Dni.ForceValue())},
		informe.FieldRow{Label: "Habilitación", Value: d.Habilitacion},
	)
}

func docente(apellido, nombre, dni string) string {
	return fmt.Sprintf("%s, %s - DNI: %s", apellido, nombre, dni)
}
