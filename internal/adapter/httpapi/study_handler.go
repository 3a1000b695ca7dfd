package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/usecase"
)

// StudyHandler serves the study session endpoints.
type StudyHandler struct {
	study usecase.StudyUsecase
}

func (h *StudyHandler) Queue(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}

	queue, err := h.study.BuildQueue(c.Request.Context(), currentUser(c), deckID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := queueResponse{Items: make([]queueItemDTO, 0, len(queue))}
	for _, item := range queue {
		resp.Items = append(resp.Items, queueItemDTO{
			CardID:    item.CardID,
			Front:     item.Front,
			Meanings:  item.Meanings,
			State:     item.State,
			IsNew:     item.IsNew,
			Direction: item.Direction,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StudyHandler) SubmitReview(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var rating entity.Rating
	if err := rating.UnmarshalText([]byte(req.Rating)); err != nil {
		respondError(c, err)
		return
	}
	dir := entity.DirectionForward
	if req.Direction != "" {
		if err := dir.UnmarshalText([]byte(req.Direction)); err != nil {
			respondError(c, err)
			return
		}
	}

	result, err := h.study.SubmitReview(c.Request.Context(), currentUser(c), deckID, req.CardID, rating, dir)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviewResponse{
		CardID: result.CardID,
		Rating: result.Rating,
		Due:    result.Due,
		State:  result.State,
	})
}

func (h *StudyHandler) Summary(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}

	summary, err := h.study.GetSummary(c.Request.Context(), currentUser(c), deckID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse{
		TotalCards:         summary.TotalCards,
		NewCount:           summary.NewCount,
		ReviewCount:        summary.ReviewCount,
		TodayStudied:       summary.TodayStudied,
		TodayNewStudied:    summary.TodayNewStudied,
		TodayReviewStudied: summary.TodayReviewStudied,
		DailyNewCards:      summary.DailyNewCards,
		DailyReviewCards:   summary.DailyReviewCards,
	})
}

func (h *StudyHandler) SetOverride(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	limits, err := h.study.SetDailyOverride(c.Request.Context(), currentUser(c), deckID, req.NewCards, req.ReviewCards)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, limitsResponse{
		NewCards:    limits.NewCards,
		ReviewCards: limits.ReviewCards,
	})
}
