package httperrors

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/types"
)

var (
	ErrConflictDuplicateIdentity      = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeDUPLICATEIDENTITY, "An account with this email or username already exists.")
	ErrBadRequestNoPendingSignup      = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeNOPENDINGSIGNUP, "No pending signup found for this email.")
	ErrBadRequestOTPExpired           = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeOTPEXPIRED, "OTP has expired, request a new one.")
	ErrUnauthorizedInvalidOTP         = NewHTTPError(http.StatusUnauthorized, types.PublicHTTPErrorTypeINVALIDOTP, "Invalid OTP.")
	ErrUnauthorizedInvalidCredentials = NewHTTPError(http.StatusUnauthorized, types.PublicHTTPErrorTypeUNAUTHORIZED, "Invalid credentials.")
)
