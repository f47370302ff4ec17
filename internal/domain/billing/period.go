// Package billing contiene la lógica de dominio pura de la facturación mensual:
// rango del mes facturado, totales y validación de la factura generada.
package billing

import (
	"fmt"
	"time"

	"github.com/jhoicas/dairybook-api/internal/domain"
)

// MonthKeyLayout formato de BillingMonth (YYYY-MM).
const MonthKeyLayout = "2006-01"

// Period rango inclusivo [Start, End] de un mes calendario en una zona horaria.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthOf devuelve el mes calendario que contiene t, evaluado en loc.
// End es el último nanosegundo del mes (último día 23:59:59.999999999).
func MonthOf(t time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Period{Start: start, End: end}
}

// Contains indica si t cae dentro del período (ambos extremos incluidos).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Key devuelve la clave YYYY-MM del período.
func (p Period) Key() string {
	return p.Start.Format(MonthKeyLayout)
}

// ParseMonthKey convierte "YYYY-MM" al período correspondiente en loc.
// Una clave mal formada devuelve domain.ErrInvalidInput.
func ParseMonthKey(key string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(MonthKeyLayout, key, loc)
	if err != nil {
		return Period{}, fmt.Errorf("%w: mes de facturación %q: %v", domain.ErrInvalidInput, key, err)
	}
	return MonthOf(t, loc), nil
}
