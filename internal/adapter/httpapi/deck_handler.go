package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/flashdeck/internal/repository"
	"github.com/eslsoft/flashdeck/internal/usecase"
)

// DeckHandler serves deck CRUD.
type DeckHandler struct {
	decks usecase.DeckUsecase
}

func (h *DeckHandler) Create(c *gin.Context) {
	var req deckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	deck, err := h.decks.CreateDeck(c.Request.Context(), currentUser(c), deckFromRequest(&req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deckToResponse(deck))
}

func (h *DeckHandler) List(c *gin.Context) {
	query := &repository.ListDeckQuery{UserID: currentUser(c)}
	bindPagination(c, &query.Pagination)

	decks, total, err := h.decks.ListDecks(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := deckListResponse{Decks: make([]deckResponse, 0, len(decks)), Total: total}
	for i := range decks {
		resp.Decks = append(resp.Decks, deckToResponse(&decks[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DeckHandler) Get(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}

	deck, err := h.decks.GetDeck(c.Request.Context(), currentUser(c), deckID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deckToResponse(deck))
}

func (h *DeckHandler) Update(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}

	var req deckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	deck := deckFromRequest(&req)
	deck.ID = deckID
	if req.Oracle == nil {
		// Preserve the stored oracle settings when the request omits them.
		existing, err := h.decks.GetDeck(c.Request.Context(), currentUser(c), deckID)
		if err != nil {
			respondError(c, err)
			return
		}
		deck.Oracle = existing.Oracle
	}

	updated, err := h.decks.UpdateDeck(c.Request.Context(), currentUser(c), deck)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deckToResponse(updated))
}

func (h *DeckHandler) Delete(c *gin.Context) {
	deckID, ok := pathID(c, "deckID")
	if !ok {
		return
	}

	if err := h.decks.DeleteDeck(c.Request.Context(), currentUser(c), deckID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindPagination(c *gin.Context, p *repository.Pagination) {
	var query struct {
		PageNo   int32 `form:"page_no"`
		PageSize int32 `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err == nil {
		p.PageNo = query.PageNo
		p.PageSize = query.PageSize
	}
	if p.PageSize <= 0 || p.PageSize > 200 {
		p.PageSize = 50
	}
}
