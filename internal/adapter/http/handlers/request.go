package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/validation"
	"taskboard/pkg/apierrors"
)

// decodeBody decodes the JSON body into dst. On failure it writes the response
// and returns false.
func decodeBody(c *gin.Context, dst interface{}, lang string) (map[string]json.RawMessage, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang),
		)
		return nil, false
	}

	raw, err := validation.DecodeJSON(body, dst)
	if err != nil {
		respondValidationError(c, err, lang)
		return nil, false
	}
	return raw, true
}

func respondValidationError(c *gin.Context, err error, lang string) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(
			http.StatusUnprocessableEntity,
			apierrors.CreateValidationError(http.StatusUnprocessableEntity, lang, fieldErrs),
		)
	case errors.Is(err, validation.ErrMalformedPayload):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang),
		)
	default:
		zap.L().Error("failed to validate request", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgInvalidPayload, lang),
		)
	}
}
