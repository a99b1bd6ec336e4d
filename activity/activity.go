// Package activity keeps a short audit trail of logins and generated
// reports.
package activity

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	TipoGeneracionInforme = "GENERACION_INFORME"
	TipoInicioSesion      = "INICIO_SESION"
)

type Entry struct {
	ID            string `json:"id"`
	Modulo        string `json:"modulo"`
	TipoActividad string `json:"tipoActividad"`
	Usuario       string `json:"usuario"`
	Descripcion   string `json:"descripcion"`
	Detalles      string `json:"detalles,omitempty"`
	Fecha         string `json:"fecha"` // 2006-01-02
	Hora          string `json:"hora"`  // 15:04:05
}

func NewEntry(at time.Time, modulo, tipo, usuario, descripcion, detalles string) Entry {
	return Entry{
		ID:            uuid.NewString(),
		Modulo:        modulo,
		TipoActividad: tipo,
		Usuario:       usuario,
		Descripcion:   descripcion,
		Detalles:      detalles,
		Fecha:         at.Format(time.DateOnly),
		Hora:          at.Format(time.TimeOnly),
	}
}

type Log interface {
	Record(ctx context.Context, e Entry) error
	// Recent returns up to n entries, newest first
	Recent(ctx context.Context, n int) ([]Entry, error)
}

// Note records e and only logs a failure
func Note(ctx context.Context, l Log, e Entry) {
	if l == nil {
		return
	}
	if err := l.Record(ctx, e); err != nil {
		log.Printf("[WARN][activity] %s %s not recorded: %v", e.TipoActividad, e.Modulo, err)
	}
}
