package entity

// DeviceOperationResult resultado efímero de un comando sobre un lector concreto.
type DeviceOperationResult struct {
	DeviceID     int64
	SerialNumber string
	Success      bool
	Message      string
}

// FanOutResult agrega los resultados por dispositivo de un fan-out.
// Success significa "al menos un dispositivo respondió bien", no "todos".
type FanOutResult struct {
	Success   bool
	Message   string
	NoDevices bool
	Results   []DeviceOperationResult
}

// Succeeded cuenta los dispositivos con éxito.
func (r FanOutResult) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}
