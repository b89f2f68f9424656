package dto

// Acciones reportadas por el coordinador biométrico.
const (
	BiometricActionEnroll      = "enroll"
	BiometricActionUnblock     = "unblock"
	BiometricActionBlock       = "block"
	BiometricActionDisable     = "disable"
	BiometricActionFingerprint = "fingerprint"
	BiometricActionSkipped     = "skipped"
)

// DeviceOperationResult resultado por dispositivo expuesto en la API.
type DeviceOperationResult struct {
	DeviceID     int64  `json:"deviceId"`
	SerialNumber string `json:"serialNumber"`
	Success      bool   `json:"success"`
	Message      string `json:"message"`
}

// BiometricResult resumen que devuelve toda operación del coordinador.
// Es informativo: quien lo invoca no debe abortar su propio flujo si Success es false.
type BiometricResult struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Action  string                  `json:"action,omitempty"`
	Results []DeviceOperationResult `json:"results"`
}

// EnrollFingerprintRequest entrada del enrolamiento de huella.
type EnrollFingerprintRequest struct {
	FingerIndex int  `json:"finger_index"`
	Overwrite   bool `json:"overwrite"`
}
