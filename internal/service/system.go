package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/deppfellow/ticketdesk/internal/model"
	"github.com/rs/zerolog"
)

type settingStore interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string) error
}

// SystemService owns system-wide settings. It is the LoginPolicy used by
// TicketService.
type SystemService struct {
	logger   *zerolog.Logger
	settings settingStore

	// defaultMandatoryLogin applies until an admin stores the setting.
	defaultMandatoryLogin bool
}

func NewSystemService(logger *zerolog.Logger, settings settingStore, defaultMandatoryLogin bool) *SystemService {
	return &SystemService{
		logger:                logger,
		settings:              settings,
		defaultMandatoryLogin: defaultMandatoryLogin,
	}
}

// IsLoginMandatory reads the mandatory-login setting.
func (s *SystemService) IsLoginMandatory(ctx context.Context) (bool, error) {
	value, ok, err := s.settings.Get(ctx, model.SettingMandatoryLogin)
	if err != nil {
		return false, fmt.Errorf("read %s setting: %w", model.SettingMandatoryLogin, err)
	}
	if !ok {
		return s.defaultMandatoryLogin, nil
	}

	mandatory, err := strconv.ParseBool(value)
	if err != nil {
		s.logger.Warn().
			Str("setting", model.SettingMandatoryLogin).
			Str("value", value).
			Msg("unparsable setting value, using default")
		return s.defaultMandatoryLogin, nil
	}
	return mandatory, nil
}

// SetLoginMandatory stores the mandatory-login setting.
func (s *SystemService) SetLoginMandatory(ctx context.Context, mandatory bool) error {
	if err := s.settings.Set(ctx, model.SettingMandatoryLogin, strconv.FormatBool(mandatory)); err != nil {
		return fmt.Errorf("write %s setting: %w", model.SettingMandatoryLogin, err)
	}

	s.logger.Info().
		Bool("mandatory_login", mandatory).
		Msg("login policy updated")
	return nil
}
