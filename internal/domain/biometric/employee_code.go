// Package biometric contiene las reglas puras del acceso por huella.
package biometric

import "fmt"

// EmployeeCode deriva el código de empleado que se registra en los lectores a partir
// del id numérico del usuario. Es determinista: el mismo id siempre produce el mismo
// código, así que un re-enrolamiento recupera el código emitido sin leerlo de la DB.
//
// Formato: decimal con ceros a la izquierda hasta 6 dígitos ("000042").
func EmployeeCode(userID int64) string {
	return fmt.Sprintf("%06d", userID)
}
