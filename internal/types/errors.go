package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PublicHTTPErrorType is the machine-readable kind of a public HTTP error.
type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric                  PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeINVALIDREQUESTBODY       PublicHTTPErrorType = "INVALID_REQUEST_BODY"
	PublicHTTPErrorTypeZEROFILESIZE             PublicHTTPErrorType = "ZERO_FILE_SIZE"
	PublicHTTPErrorTypeFILETOOLARGE             PublicHTTPErrorType = "FILE_TOO_LARGE"
	PublicHTTPErrorTypeUNSUPPORTEDMEDIATYPE     PublicHTTPErrorType = "UNSUPPORTED_MEDIA_TYPE"
	PublicHTTPErrorTypeDUPLICATEIDENTITY        PublicHTTPErrorType = "DUPLICATE_IDENTITY"
	PublicHTTPErrorTypeNOPENDINGSIGNUP          PublicHTTPErrorType = "NO_PENDING_SIGNUP"
	PublicHTTPErrorTypeOTPEXPIRED               PublicHTTPErrorType = "OTP_EXPIRED"
	PublicHTTPErrorTypeINVALIDOTP               PublicHTTPErrorType = "INVALID_OTP"
	PublicHTTPErrorTypeUNKNOWNWASTETYPE         PublicHTTPErrorType = "UNKNOWN_WASTE_TYPE"
	PublicHTTPErrorTypeBINNOTFOUND              PublicHTTPErrorType = "BIN_NOT_FOUND"
	PublicHTTPErrorTypeINVALIDENVELOPE          PublicHTTPErrorType = "INVALID_ENVELOPE"
	PublicHTTPErrorTypeDECRYPTIONFAILED         PublicHTTPErrorType = "DECRYPTION_FAILED"
	PublicHTTPErrorTypeWALLETALREADYPROVISIONED PublicHTTPErrorType = "WALLET_ALREADY_PROVISIONED"
	PublicHTTPErrorTypeINVALIDMNEMONIC          PublicHTTPErrorType = "INVALID_MNEMONIC"
	PublicHTTPErrorTypeUNAUTHORIZED             PublicHTTPErrorType = "UNAUTHORIZED"
	PublicHTTPErrorTypeTOOMANYREQUESTS          PublicHTTPErrorType = "TOO_MANY_REQUESTS"
)

func (m PublicHTTPErrorType) Pointer() *PublicHTTPErrorType {
	return &m
}

// PublicHTTPError is the body of every error response.
type PublicHTTPError struct {
	// HTTP status code returned for the error
	Code *int64 `json:"status"`

	// More detailed, human-readable, optional explanation of the error
	Detail string `json:"detail,omitempty"`

	// Short, human-readable description of the error
	Title *string `json:"title"`

	// Type of error returned, should be used for client-side error handling
	Type *PublicHTTPErrorType `json:"type"`
}

func (m *PublicHTTPError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("status", "body", m.Code); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PublicHTTPValidationError extends PublicHTTPError with per-field details.
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of errors received while validating payload against schema
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// HTTPValidationErrorDetail describes a single failed field.
type HTTPValidationErrorDetail struct {
	// Error describing field validation failure
	Error *string `json:"error"`

	// Indicates how the invalid field was provided
	In *string `json:"in"`

	// Key of field failing validation
	Key *string `json:"key"`
}
