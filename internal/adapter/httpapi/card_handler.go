package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/repository"
	"github.com/eslsoft/flashdeck/internal/usecase"
)

// CardHandler serves card CRUD within a deck.
type CardHandler struct {
	cards usecase.CardUsecase
}

func (h *CardHandler) Create(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}

	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	card, err := h.cards.CreateCard(c.Request.Context(), currentUser(c), deckID, &entity.Card{
		Front:    req.Front,
		Meanings: req.Meanings,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cardToResponse(card))
}

func (h *CardHandler) List(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}

	query := &repository.ListCardQuery{DeckID: deckID}
	query.Filter = c.Query("filter")
	query.OrderBy = c.Query("order_by")
	bindPagination(c, &query.Pagination)

	cards, total, err := h.cards.ListCards(c.Request.Context(), currentUser(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := cardListResponse{Cards: make([]cardResponse, 0, len(cards)), Total: total}
	for i := range cards {
		resp.Cards = append(resp.Cards, cardToResponse(&cards[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CardHandler) Get(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardID")
	if !ok {
		return
	}

	card, err := h.cards.GetCard(c.Request.Context(), currentUser(c), deckID, cardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cardToResponse(card))
}

func (h *CardHandler) Delete(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardID")
	if !ok {
		return
	}

	if err := h.cards.DeleteCard(c.Request.Context(), currentUser(c), deckID, cardID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
