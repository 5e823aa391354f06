package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pintando7/escolinha/internal/app/models"
)

// DeviceRepository handles registered push devices
type DeviceRepository struct {
	db *pgxpool.Pool
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *pgxpool.Pool) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Upsert registers a device or refreshes an existing registration
// identified by its token hash.
func (r *DeviceRepository) Upsert(ctx context.Context, device *models.Device) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`INSERT INTO devices (platform, token_hash, endpoint_arn, enabled)
		 VALUES ($1, $2, $3, TRUE)
		 ON CONFLICT (token_hash)
		 DO UPDATE SET endpoint_arn = EXCLUDED.endpoint_arn, enabled = TRUE, updated_at = now()
		 RETURNING id::text`,
		device.Platform, device.TokenHash, device.EndpointARN).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("error registering device: %w", err)
	}

	device.ID = id
	return id, nil
}

// ListEnabled returns all enabled push devices.
func (r *DeviceRepository) ListEnabled(ctx context.Context) ([]*models.Device, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, platform, token_hash, endpoint_arn, enabled, updated_at
		 FROM devices WHERE enabled = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("error listing devices: %w", err)
	}
	defer rows.Close()

	var devices []*models.Device
	for rows.Next() {
		device := &models.Device{}
		if err := rows.Scan(&device.ID, &device.Platform, &device.TokenHash,
			&device.EndpointARN, &device.Enabled, &device.UpdatedAt); err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return devices, nil
}

// Disable marks a device as no longer reachable. Called when the push
// provider reports the endpoint as dead.
func (r *DeviceRepository) Disable(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE devices SET enabled = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error disabling device: %w", err)
	}
	return nil
}
