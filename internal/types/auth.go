package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

const (
	nameMaxLength     = 50
	passwordMinLength = 6
	otpPattern        = `^\s*[0-9]{6}\s*$`
)

// PostSignupPayload post signup payload
type PostSignupPayload struct {
	// Required: true
	// Format: email
	Email *strfmt.Email `json:"email"`

	// Required: true
	// Max Length: 50
	Username *string `json:"username"`

	// Required: true
	// Max Length: 50
	FirstName *string `json:"firstName"`

	// Required: true
	// Max Length: 50
	LastName *string `json:"lastName"`

	// Min Length: 6
	Password string `json:"password,omitempty"`
}

func (m *PostSignupPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validateEmail("email", m.Email, formats); err != nil {
		res = append(res, err)
	}

	if err := validateName("username", m.Username); err != nil {
		res = append(res, err)
	}

	if err := validateName("firstName", m.FirstName); err != nil {
		res = append(res, err)
	}

	if err := validateName("lastName", m.LastName); err != nil {
		res = append(res, err)
	}

	if m.Password != "" {
		if err := validate.MinLength("password", "body", m.Password, passwordMinLength); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostSignupResponse post signup response
type PostSignupResponse struct {
	// Required: true
	Message *string `json:"message"`

	// Required: true
	WalletAddress *string `json:"walletAddress"`

	// Required: true
	ExpiresAt *strfmt.DateTime `json:"expiresAt"`
}

func (m *PostSignupResponse) Validate(formats strfmt.Registry) error {
	return requireAll(
		required("message", m.Message),
		required("walletAddress", m.WalletAddress),
		required("expiresAt", m.ExpiresAt),
	)
}

// PostVerifyOtpPayload post verify otp payload
type PostVerifyOtpPayload struct {
	// Required: true
	// Format: email
	Email *strfmt.Email `json:"email"`

	// Required: true
	// Pattern: six digits, surrounding whitespace tolerated
	Otp *string `json:"otp"`
}

func (m *PostVerifyOtpPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validateEmail("email", m.Email, formats); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("otp", "body", m.Otp); err != nil {
		res = append(res, err)
	} else if err := validate.Pattern("otp", "body", *m.Otp, otpPattern); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostResendOtpPayload post resend otp payload
type PostResendOtpPayload struct {
	// Required: true
	// Format: email
	Email *strfmt.Email `json:"email"`
}

func (m *PostResendOtpPayload) Validate(formats strfmt.Registry) error {
	if err := validateEmail("email", m.Email, formats); err != nil {
		return errors.CompositeValidationError(err)
	}

	return nil
}

// PostResendOtpResponse post resend otp response
type PostResendOtpResponse struct {
	// Required: true
	Message *string `json:"message"`

	// Required: true
	ExpiresAt *strfmt.DateTime `json:"expiresAt"`
}

func (m *PostResendOtpResponse) Validate(formats strfmt.Registry) error {
	return requireAll(
		required("message", m.Message),
		required("expiresAt", m.ExpiresAt),
	)
}

// PostLoginPayload post login payload
type PostLoginPayload struct {
	// Required: true
	// Format: email
	Email *strfmt.Email `json:"email"`

	// Required: true
	Password *string `json:"password"`
}

func (m *PostLoginPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validateEmail("email", m.Email, formats); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("password", "body", m.Password); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("password", "body", *m.Password, 1); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// User public user representation, never carries wallet secrets
type User struct {
	// Required: true
	ID *strfmt.UUID `json:"id"`

	// Required: true
	Email *string `json:"email"`

	Username string `json:"username"`

	FirstName string `json:"firstName"`

	LastName string `json:"lastName"`

	// Required: true
	WalletAddress *string `json:"walletAddress"`

	RewardAddress string `json:"rewardAddress,omitempty"`

	TotalPoints *int64 `json:"totalPoints,omitempty"`
}

func (m *User) Validate(formats strfmt.Registry) error {
	return requireAll(
		required("id", m.ID),
		required("email", m.Email),
		required("walletAddress", m.WalletAddress),
	)
}

// PostLoginResponse post login response
type PostLoginResponse struct {
	// Required: true
	Message *string `json:"message"`

	// Required: true
	User *User `json:"user"`

	// Required: true
	Token *string `json:"token"`
}

func (m *PostLoginResponse) Validate(formats strfmt.Registry) error {
	if err := requireAll(
		required("message", m.Message),
		required("user", m.User),
		required("token", m.Token),
	); err != nil {
		return err
	}

	return m.User.Validate(formats)
}

// PostVerifyOtpResponse post verify otp response.
// SeedPhrase is present in this response only and is never stored in plaintext.
type PostVerifyOtpResponse struct {
	PostLoginResponse

	// Required: true
	SeedPhrase *string `json:"seedPhrase"`
}

func (m *PostVerifyOtpResponse) Validate(formats strfmt.Registry) error {
	if err := m.PostLoginResponse.Validate(formats); err != nil {
		return err
	}

	return requireAll(required("seedPhrase", m.SeedPhrase))
}

// GetProfileResponse get profile response
type GetProfileResponse struct {
	User

	// Required: true
	Network *string `json:"network"`

	// Required: true
	CreatedAt *strfmt.DateTime `json:"createdAt"`
}

func (m *GetProfileResponse) Validate(formats strfmt.Registry) error {
	if err := m.User.Validate(formats); err != nil {
		return err
	}

	return requireAll(
		required("network", m.Network),
		required("createdAt", m.CreatedAt),
	)
}

func validateEmail(path string, email *strfmt.Email, formats strfmt.Registry) error {
	if err := validate.Required(path, "body", email); err != nil {
		return err
	}

	if err := validate.FormatOf(path, "body", "email", email.String(), formats); err != nil {
		return err
	}

	return nil
}

func validateName(path string, value *string) error {
	if err := validate.Required(path, "body", value); err != nil {
		return err
	}

	if err := validate.MinLength(path, "body", *value, 1); err != nil {
		return err
	}

	if err := validate.MaxLength(path, "body", *value, nameMaxLength); err != nil {
		return err
	}

	return nil
}
