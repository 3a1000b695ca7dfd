package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/flashdeck/internal/entity"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, entity.ErrDeckNotFound),
		errors.Is(err, entity.ErrCardNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, entity.ErrReviewConflict),
		errors.Is(err, entity.ErrDeckNameTaken):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrReverseDisabled),
		errors.Is(err, entity.ErrInvalidDeckName),
		errors.Is(err, entity.ErrInvalidDeckID),
		errors.Is(err, entity.ErrInvalidCardID),
		errors.Is(err, entity.ErrInvalidCardFront),
		errors.Is(err, entity.ErrInvalidRating),
		errors.Is(err, entity.ErrInvalidDirection),
		errors.Is(err, entity.ErrInvalidCardState),
		errors.Is(err, entity.ErrInvalidResetHour),
		errors.Is(err, entity.ErrInvalidRetention):
		status = http.StatusBadRequest
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}
