package dto

import "time"

// CreateDeviceRequest entrada para registrar un lector.
type CreateDeviceRequest struct {
	SerialNo   string `json:"serial_no"`
	DeviceName string `json:"device_name"`
	Location   string `json:"location"`
	IsActive   *bool  `json:"is_active"`
}

// UpdateDeviceRequest entrada para actualizar un lector.
type UpdateDeviceRequest struct {
	SerialNo   *string `json:"serial_no"`
	DeviceName *string `json:"device_name"`
	Location   *string `json:"location"`
}

// SetDeviceActiveRequest activa o desactiva un lector.
type SetDeviceActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// DeviceResponse salida de un lector.
type DeviceResponse struct {
	ID         int64     `json:"id"`
	SerialNo   string    `json:"serial_no"`
	DeviceName string    `json:"device_name"`
	Location   string    `json:"location"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DeviceListResponse lista paginada de lectores.
type DeviceListResponse struct {
	Items []DeviceResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
