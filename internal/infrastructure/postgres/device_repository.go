package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

const deviceColumns = `id, serial_no, device_name, location, is_active, created_at, updated_at`

// DeviceRepo implementación del registro de lectores sobre PostgreSQL.
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador. Acepta pool o tx.
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

// Create inserta el dispositivo y completa ID y timestamps.
func (r *DeviceRepo) Create(ctx context.Context, d *entity.Device) error {
	query := `
		INSERT INTO devices (serial_no, device_name, location, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		d.SerialNo, d.DeviceName, d.Location, d.IsActive, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSerialAlreadyExists
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *DeviceRepo) GetByID(ctx context.Context, id int64) (*entity.Device, error) {
	return r.getOne(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id)
}

// GetBySerial devuelve (nil, nil) si no existe.
func (r *DeviceRepo) GetBySerial(ctx context.Context, serialNo string) (*entity.Device, error) {
	return r.getOne(ctx, `SELECT `+deviceColumns+` FROM devices WHERE serial_no = $1`, serialNo)
}

// Update reemplaza los campos editables.
func (r *DeviceRepo) Update(ctx context.Context, d *entity.Device) error {
	query := `
		UPDATE devices SET serial_no = $2, device_name = $3, location = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, d.ID, d.SerialNo, d.DeviceName, d.Location, d.IsActive, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSerialAlreadyExists
		}
		return fmt.Errorf("update device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDeviceNotFound
	}
	return nil
}

// List lista todos los dispositivos (activos e inactivos) por id.
func (r *DeviceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices ORDER BY id LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListActive devuelve los activos en orden de registro.
func (r *DeviceRepo) ListActive(ctx context.Context) ([]*entity.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE is_active ORDER BY id`
	return r.list(ctx, query)
}

// Delete elimina el dispositivo. No toca a los usuarios enrolados.
func (r *DeviceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDeviceNotFound
	}
	return nil
}

func (r *DeviceRepo) getOne(ctx context.Context, query string, arg any) (*entity.Device, error) {
	d, err := scanDevice(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return d, nil
}

func (r *DeviceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Device, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Device, 0)
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDevice(row pgx.Row) (*entity.Device, error) {
	var d entity.Device
	err := row.Scan(&d.ID, &d.SerialNo, &d.DeviceName, &d.Location, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
