package router

import (
	"errors"
	"net/http"

	"github.com/JojoFlex1/done/internal/api/httperrors"
	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/bins"
	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/rewards/catalog"
	"github.com/JojoFlex1/done/internal/signup"
	"github.com/JojoFlex1/done/internal/storage"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/JojoFlex1/done/internal/wallet/keystore"
	"github.com/JojoFlex1/done/internal/wallet/seed"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type domainError struct {
	target error
	public *httperrors.HTTPError
}

// domainErrors is checked in order, the first match wins.
var domainErrors = []domainError{
	{identity.ErrDuplicateIdentity, httperrors.ErrConflictDuplicateIdentity},
	{identity.ErrWalletAlreadyProvisioned, httperrors.ErrConflictWalletAlreadyProvisioned},
	{identity.ErrNotFound, httperrors.ErrUnauthorized},
	{signup.ErrNoPendingSignup, httperrors.ErrBadRequestNoPendingSignup},
	{signup.ErrExpired, httperrors.ErrBadRequestOTPExpired},
	{signup.ErrInvalidCode, httperrors.ErrUnauthorizedInvalidOTP},
	{auth.ErrInvalidCredentials, httperrors.ErrUnauthorizedInvalidCredentials},
	{auth.ErrUnauthorized, httperrors.ErrUnauthorized},
	{catalog.ErrUnknownWasteType, httperrors.ErrBadRequestUnknownWasteType},
	{bins.ErrBinNotFound, httperrors.ErrNotFoundBin},
	{keystore.ErrInvalidEnvelope, httperrors.ErrBadRequestInvalidEnvelope},
	{keystore.ErrDecryptionFailed, httperrors.ErrBadRequestDecryptionFailed},
	{wallet.ErrAmountOutOfRange, httperrors.ErrBadRequestAmountOutOfRange},
	{seed.ErrInvalidMnemonic, httperrors.ErrBadRequestInvalidMnemonic},
	{seed.ErrInvalidWordCount, httperrors.ErrBadRequestInvalidMnemonic},
	{storage.ErrEmptyFile, httperrors.ErrBadRequestZeroFileSize},
	{storage.ErrFileTooLarge, httperrors.ErrRequestEntityTooLarge},
	{storage.ErrUnsupportedMediaType, httperrors.ErrUnsupportedMediaTypePhoto},
	{middleware.ErrRateLimitExceeded, httperrors.ErrTooManyRequests},
}

// NewHTTPErrorHandler renders every error returned by a handler as a public error body.
// Domain errors get their stable type, everything unknown becomes a 500 whose details are
// only shown when hideInternal is false.
func NewHTTPErrorHandler(hideInternal bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		handleError(err, c, hideInternal)
	}
}

func handleError(err error, c echo.Context, hideInternal bool) {
	if c.Response().Committed {
		return
	}

	log := util.LogFromEchoContext(c)

	var valErr *httperrors.HTTPValidationError
	if errors.As(err, &valErr) {
		respond(c, int(*valErr.Code), valErr)
		return
	}

	var httpErr *httperrors.HTTPError
	switch {
	case errors.As(err, &httpErr):
	case lookupDomainError(err) != nil:
		httpErr = lookupDomainError(err).Wrap(err)
	default:
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusRequestEntityTooLarge {
				httpErr = httperrors.ErrRequestEntityTooLarge.Wrap(err)
			} else {
				httpErr = httperrors.NewFromEcho(echoErr)
			}
			break
		}

		httpErr = httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
		httpErr.Internal = err
	}

	code := int(*httpErr.Code)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", code).Msg("Request failed with internal server error")

		if hideInternal {
			httpErr = httperrors.ErrInternalServerError
		} else if httpErr.Internal != nil && len(httpErr.Detail) == 0 {
			cp := *httpErr
			cp.Detail = httpErr.Internal.Error()
			httpErr = &cp
		}
	} else {
		log.Debug().Err(err).Int("status", code).Msg("Request failed")
	}

	respond(c, code, httpErr)
}

func lookupDomainError(err error) *httperrors.HTTPError {
	for _, d := range domainErrors {
		if errors.Is(err, d.target) {
			return d.public
		}
	}

	return nil
}

func respond(c echo.Context, code int, body any) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}

	if err != nil {
		util.LogFromEchoContext(c).Warn().Err(err).Msg("Failed to write error response")
	}
}
