package httperrors

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/types"
)

var (
	ErrBadRequestInvalidEnvelope        = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDENVELOPE, "Encrypted data has an invalid format.")
	ErrBadRequestDecryptionFailed       = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeDECRYPTIONFAILED, "Failed to decrypt data.")
	ErrConflictWalletAlreadyProvisioned = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeWALLETALREADYPROVISIONED, "User already has a wallet.")
	ErrBadRequestAmountOutOfRange       = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDREQUESTBODY, "Amount exceeds the total ADA supply.")
)
