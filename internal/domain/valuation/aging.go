package valuation

import "time"

// SlowMovingThresholdDays umbral de envejecimiento: un lote con más de 90 días
// en bodega se marca como de lenta rotación. Constante de diseño, no configurable.
const SlowMovingThresholdDays = 90

const millisPerDay = 24 * 60 * 60 * 1000

// DaysInStock días transcurridos desde la recepción, con techo calendario.
// Devuelve (0, false) cuando no hay fecha de recepción ("edad desconocida",
// que el caller debe presentar distinto de 0 días).
//
// Se usa techo y un mínimo de 1: un lote recibido hace un milisegundo ya
// reporta 1 día, para que un lote existente nunca muestre el ambiguo "0 días".
func DaysInStock(received *time.Time, now time.Time) (int, bool) {
	if received == nil || received.IsZero() {
		return 0, false
	}
	elapsed := now.Sub(*received)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	ms := elapsed.Milliseconds()
	days := int((ms + millisPerDay - 1) / millisPerDay)
	if days < 1 {
		days = 1
	}
	return days, true
}

// IsSlowMoving indica si el lote supera el umbral de lenta rotación.
// Un lote sin fecha de recepción nunca se marca (edad desconocida ≠ viejo).
func IsSlowMoving(received *time.Time, now time.Time) bool {
	days, ok := DaysInStock(received, now)
	return ok && days > SlowMovingThresholdDays
}
