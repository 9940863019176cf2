package verification

import (
	"github.com/twistapp/otpgate/internal/pkg/config"
	"github.com/twistapp/otpgate/internal/pkg/instrument"
	"github.com/twistapp/otpgate/internal/pkg/phone"
	"github.com/twistapp/otpgate/internal/pkg/router"
	"github.com/twistapp/otpgate/internal/pkg/validator"
	"github.com/twistapp/otpgate/internal/verification/inbound"
	"github.com/twistapp/otpgate/internal/verification/outbound/twilio"
	"github.com/twistapp/otpgate/internal/verification/outbound/twist"
	"github.com/twistapp/otpgate/internal/verification/usecase"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

// settings are the collaborator credentials this module cannot run without.
// They are validated at startup so misconfiguration fails fast instead of
// surfacing as request-time provider errors.
type settings struct {
	TwilioBaseURL    string `validate:"required,url"`
	TwilioAccountSID string `validate:"required"`
	TwilioAuthToken  string `validate:"required"`
	TwilioServiceSID string `validate:"required"`
	StatusBaseURL    string `validate:"required,url"`
	StatusAPIKey     string `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	set := settings{
		TwilioBaseURL:    dep.Config.GetString("twilio.base_url"),
		TwilioAccountSID: dep.Config.GetString("twilio.account_sid"),
		TwilioAuthToken:  dep.Config.GetString("twilio.auth_token"),
		TwilioServiceSID: dep.Config.GetString("twilio.verify_service_sid"),
		StatusBaseURL:    dep.Config.GetString("status_service.base_url"),
		StatusAPIKey:     dep.Config.GetString("status_service.api_key"),
	}
	if err := dep.Validator.Validate(set); err != nil {
		return err
	}

	provider := twilio.NewVerify(twilio.Config{
		BaseURL:    set.TwilioBaseURL,
		AccountSID: set.TwilioAccountSID,
		AuthToken:  set.TwilioAuthToken,
		ServiceSID: set.TwilioServiceSID,
		Timeout:    dep.Config.GetSecond("twilio.timeout_seconds"),
	}, dep.Instrument)

	status := twist.NewClient(twist.Config{
		BaseURL: set.StatusBaseURL,
		APIKey:  set.StatusAPIKey,
		Timeout: dep.Config.GetSecond("status_service.timeout_seconds"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		Provider:   provider,
		Status:     status,
		Normalizer: phone.NewNormalizer(dep.Config.GetString("modules.verification.default_country_code")),
		Validator:  dep.Validator,
		Config:     dep.Config,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
