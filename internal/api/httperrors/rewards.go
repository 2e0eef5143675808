package httperrors

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/types"
)

var (
	ErrBadRequestUnknownWasteType = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeUNKNOWNWASTETYPE, "Unknown waste type.")
	ErrNotFoundBin                = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeBINNOTFOUND, "Bin not found.")
)
