package httperrors

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/types"
)

var (
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
	ErrUnauthorized        = NewHTTPError(http.StatusUnauthorized, types.PublicHTTPErrorTypeUNAUTHORIZED, "Authentication required.")
	ErrTooManyRequests     = NewHTTPError(http.StatusTooManyRequests, types.PublicHTTPErrorTypeTOOMANYREQUESTS, "Too many requests, try again later.")

	ErrBadRequestZeroFileSize    = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeZEROFILESIZE, "File size of 0 is not supported.")
	ErrRequestEntityTooLarge     = NewHTTPError(http.StatusRequestEntityTooLarge, types.PublicHTTPErrorTypeFILETOOLARGE, "Uploaded file is too large.")
	ErrUnsupportedMediaTypePhoto = NewHTTPError(http.StatusUnsupportedMediaType, types.PublicHTTPErrorTypeUNSUPPORTEDMEDIATYPE, "Photo must be a JPEG, PNG or GIF image.")
	ErrBadRequestInvalidMnemonic = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDMNEMONIC, "Mnemonic phrase is invalid.")
	ErrBadRequestInvalidQRCode   = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDREQUESTBODY, "Invalid QR code.")
)
