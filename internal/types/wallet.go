package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PostGenerateWalletResponse test-only wallet, never persisted
type PostGenerateWalletResponse struct {
	// Required: true
	Address *string `json:"address"`

	// Required: true
	RewardAddress *string `json:"rewardAddress"`

	// Required: true
	Mnemonic *string `json:"mnemonic"`

	// Required: true
	EncryptedMnemonic *string `json:"encryptedMnemonic"`

	// Required: true
	Network *string `json:"network"`
}

func (m *PostGenerateWalletResponse) Validate(formats strfmt.Registry) error {
	return requireAll(
		required("address", m.Address),
		required("rewardAddress", m.RewardAddress),
		required("mnemonic", m.Mnemonic),
		required("encryptedMnemonic", m.EncryptedMnemonic),
		required("network", m.Network),
	)
}

// PostDecryptMnemonicPayload post decrypt mnemonic payload
type PostDecryptMnemonicPayload struct {
	// Required: true
	EncryptedData *string `json:"encryptedData"`

	// Required: true
	Password *string `json:"password"`
}

func (m *PostDecryptMnemonicPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("encryptedData", "body", m.EncryptedData); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("encryptedData", "body", *m.EncryptedData, 1); err != nil {
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

// PostDecryptMnemonicResponse post decrypt mnemonic response
type PostDecryptMnemonicResponse struct {
	// Required: true
	Mnemonic *string `json:"mnemonic"`
}

func (m *PostDecryptMnemonicResponse) Validate(formats strfmt.Registry) error {
	return requireAll(required("mnemonic", m.Mnemonic))
}

// GetValidateAddressResponse get validate address response
type GetValidateAddressResponse struct {
	// Required: true
	Address *string `json:"address"`

	// Required: true
	IsValid *bool `json:"isValid"`
}

func (m *GetValidateAddressResponse) Validate(formats strfmt.Registry) error {
	return requireAll(
		required("address", m.Address),
		required("isValid", m.IsValid),
	)
}

// GetNetworkResponse get network response
type GetNetworkResponse struct {
	// Required: true
	Network *string `json:"network"`

	// Required: true
	IsMainnet *bool `json:"isMainnet"`
}

func (m *GetNetworkResponse) Validate(formats strfmt.Registry) error {
	return requireAll(
		required("network", m.Network),
		required("isMainnet", m.IsMainnet),
	)
}

// total ada supply
const maxAda = 45_000_000_000

// PostAdaToLovelacesPayload post ada to lovelaces payload
type PostAdaToLovelacesPayload struct {
	// Required: true
	// Minimum: 0
	// Maximum: 4.5e+10
	Ada *float64 `json:"ada"`
}

func (m *PostAdaToLovelacesPayload) Validate(formats strfmt.Registry) error {
	if err := validate.Required("ada", "body", m.Ada); err != nil {
		return errors.CompositeValidationError(err)
	}

	if err := validate.Minimum("ada", "body", *m.Ada, 0, false); err != nil {
		return errors.CompositeValidationError(err)
	}

	if err := validate.Maximum("ada", "body", *m.Ada, maxAda, false); err != nil {
		return errors.CompositeValidationError(err)
	}

	return nil
}

// PostAdaToLovelacesResponse post ada to lovelaces response
type PostAdaToLovelacesResponse struct {
	// Required: true
	Ada *float64 `json:"ada"`

	// Required: true
	Lovelaces *int64 `json:"lovelaces"`
}

func (m *PostAdaToLovelacesResponse) Validate(formats strfmt.Registry) error {
	return requireAll(
		required("ada", m.Ada),
		required("lovelaces", m.Lovelaces),
	)
}

// PostLovelacesToAdaPayload post lovelaces to ada payload
type PostLovelacesToAdaPayload struct {
	// Required: true
	// Minimum: 0
	Lovelaces *int64 `json:"lovelaces"`
}

func (m *PostLovelacesToAdaPayload) Validate(formats strfmt.Registry) error {
	if err := validate.Required("lovelaces", "body", m.Lovelaces); err != nil {
		return errors.CompositeValidationError(err)
	}

	if err := validate.MinimumInt("lovelaces", "body", *m.Lovelaces, 0, false); err != nil {
		return errors.CompositeValidationError(err)
	}

	return nil
}

// PostLovelacesToAdaResponse post lovelaces to ada response
type PostLovelacesToAdaResponse struct {
	// Required: true
	Lovelaces *int64 `json:"lovelaces"`

	// Required: true
	Ada *float64 `json:"ada"`
}

func (m *PostLovelacesToAdaResponse) Validate(formats strfmt.Registry) error {
	return requireAll(
		required("lovelaces", m.Lovelaces),
		required("ada", m.Ada),
	)
}
