// Package push delivers broadcast notifications to registered mobile
// devices through AWS SNS platform endpoints.
package push

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/logger"
)

// DeviceStore is the persistence surface the push service needs.
type DeviceStore interface {
	Upsert(ctx context.Context, device *models.Device) (string, error)
	ListEnabled(ctx context.Context) ([]*models.Device, error)
	Disable(ctx context.Context, id string) error
}

// Config carries the SNS settings.
type Config struct {
	Enabled     bool
	Region      string
	PlatformARN string
}

// Service registers devices and publishes notifications. When disabled
// every operation is a no-op so the rest of the app never has to check.
type Service struct {
	cfg     Config
	sns     *awssns.Client
	devices DeviceStore
}

// NewService builds the push service. AWS credentials come from the
// default chain (env, shared config, instance role).
func NewService(ctx context.Context, cfg Config, devices DeviceStore) (*Service, error) {
	svc := &Service{cfg: cfg, devices: devices}
	if !cfg.Enabled {
		logger.Info().Msg("Push notifications disabled")
		return svc, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	svc.sns = awssns.NewFromConfig(awsCfg)
	return svc, nil
}

// TokenHash returns the stable identity of a raw device token. Raw
// tokens are never stored.
func TokenHash(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// RegisterDevice creates (or refreshes) an SNS platform endpoint for
// the device token and persists the registration.
func (s *Service) RegisterDevice(ctx context.Context, platform, token string) (*models.Device, error) {
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return nil, fmt.Errorf("unknown platform %q", platform)
	}

	device := &models.Device{
		Platform:  platform,
		TokenHash: TokenHash(token),
		Enabled:   true,
	}

	if s.sns != nil {
		out, err := s.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
			PlatformApplicationArn: aws.String(s.cfg.PlatformARN),
			Token:                  aws.String(token),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create platform endpoint: %w", err)
		}
		device.EndpointARN = aws.ToString(out.EndpointArn)
	}

	if _, err := s.devices.Upsert(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// Broadcast publishes a notification to every enabled device. Failures
// are logged per endpoint and never abort the loop.
func (s *Service) Broadcast(ctx context.Context, title, body string, data map[string]string) {
	if s.sns == nil {
		return
	}

	devices, err := s.devices.ListEnabled(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list push devices")
		return
	}
	if len(devices) == 0 {
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode push payload")
		return
	}

	for _, device := range devices {
		_, err := s.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(device.EndpointARN),
		})
		if err != nil {
			logger.Warn().Err(err).Str("deviceId", device.ID).Msg("Push publish failed, disabling endpoint")
			_ = s.devices.Disable(ctx, device.ID)
		}
	}
}
