// Package records holds the rows the reports are built from and the
// sources that load them.
package records

import (
	"github.com/zeptools/informes/nullable"
)

// Expediente is a position-creation case file (module CREACIONES)
type Expediente struct {
	Expediente      string          `json:"expediente"`
	Solicita        string          `json:"solicita"`
	Establecimiento string          `json:"establecimiento"`
	Ubicacion       string          `json:"ubicacion"`
	Comentario      nullable.String `json:"comentario"`
}

func (e *Expediente) TargetFields() []any {
	return []any{&e.Expediente, &e.Solicita, &e.Establecimiento, &e.Ubicacion, &e.Comentario}
}

// CoberturaDetalle is one covered position from a call (module COBERTURA)
type CoberturaDetalle struct {
	Llamado            string          `json:"llamado"`
	Tipo               string          `json:"tipo"`
	Fecha              string          `json:"fecha"`
	JuntaClasificacion string          `json:"juntaClasificacion"`
	Region             string          `json:"region"`
	Localidad          string          `json:"localidad"`
	Establecimiento    string          `json:"establecimiento"`
	Nivel              string          `json:"nivel"`
	Caracter           string          `json:"caracter"`
	Descripcion        string          `json:"descripcion"`
	Apellido           string          `json:"apellido"`
	Nombre             string          `json:"nombre"`
	Dni                nullable.String `json:"dni"`
	Habilitacion       string          `json:"habilitacion"`
}

func (d *CoberturaDetalle) TargetFields() []any {
	return []any{
		&d.Llamado, &d.Tipo, &d.Fecha, &d.JuntaClasificacion, &d.Region, &d.Localidad,
		&d.Establecimiento, &d.Nivel, &d.Caracter, &d.Descripcion,
		&d.Apellido, &d.Nombre, &d.Dni, &d.Habilitacion,
	}
}

// Titularizacion is a tenure request (module TITULARIZACIONES)
type Titularizacion struct {
	Apellido           string          `json:"apellido"`
	Nombre             string          `json:"nombre"`
	Dni                nullable.String `json:"dni"`
	Establecimiento    string          `json:"establecimiento"`
	Localidad          string          `json:"localidad"`
	Departamento       string          `json:"departamento"`
	JuntaClasificacion string          `json:"juntaClasificacion"`
	TitularizarEn      string          `json:"titularizarEn"`
	RenunciaA          nullable.String `json:"renunciaA"`
	Expediente         string          `json:"expediente"`
}

func (t *Titularizacion) TargetFields() []any {
	return []any{
		&t.Apellido, &t.Nombre, &t.Dni, &t.Establecimiento, &t.Localidad, &t.Departamento,
		&t.JuntaClasificacion, &t.TitularizarEn, &t.RenunciaA, &t.Expediente,
	}
}
