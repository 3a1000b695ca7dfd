// Package httpapi exposes the usecases over a JSON HTTP API.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/flashdeck/internal/usecase"
)

// userIDHeader carries the authenticated user. Authentication proper sits in
// front of this service; the header is trusted as-is.
const userIDHeader = "X-User-ID"

const userIDKey = "userID"

// Router mounts all API routes.
type Router struct {
	decks *DeckHandler
	cards *CardHandler
	study *StudyHandler
}

// NewRouter builds the route table from the individual handlers.
func NewRouter(decks *DeckHandler, cards *CardHandler, study *StudyHandler) *Router {
	return &Router{decks: decks, cards: cards, study: study}
}

// Register mounts everything under /api/v1.
func (rt *Router) Register(r gin.IRouter) {
	api := r.Group("/api/v1")
	api.Use(requireUser())

	decks := api.Group("/decks")
	decks.POST("", rt.decks.Create)
	decks.GET("", rt.decks.List)
	decks.GET("/:deckID", rt.decks.Get)
	decks.PUT("/:deckID", rt.decks.Update)
	decks.DELETE("/:deckID", rt.decks.Delete)

	cards := decks.Group("/:deckID/cards")
	cards.POST("", rt.cards.Create)
	cards.GET("", rt.cards.List)
	cards.GET("/:cardID", rt.cards.Get)
	cards.DELETE("/:cardID", rt.cards.Delete)

	study := decks.Group("/:deckID/study")
	study.GET("/queue", rt.study.Queue)
	study.POST("/reviews", rt.study.SubmitReview)
	study.GET("/summary", rt.study.Summary)
	study.POST("/override", rt.study.SetOverride)
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(userIDHeader)
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing or invalid " + userIDHeader + " header"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

// StudyHandler, DeckHandler and CardHandler construction is kept together so
// wire providers stay in one place.
func NewDeckHandler(decks usecase.DeckUsecase) *DeckHandler {
	return &DeckHandler{decks: decks}
}

func NewCardHandler(cards usecase.CardUsecase) *CardHandler {
	return &CardHandler{cards: cards}
}

func NewStudyHandler(study usecase.StudyUsecase) *StudyHandler {
	return &StudyHandler{study: study}
}
