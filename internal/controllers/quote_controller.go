package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"buildersite/internal/geocoding"
	"buildersite/internal/services"
)

type quoteInput struct {
	Name      string   `json:"name" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address" binding:"required"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Floorplan string   `json:"floorplan"`
	Facade    string   `json:"facade"`
	Options   []string `json:"options"`
	Message   string   `json:"message"`
}

type quoteStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type QuoteController struct {
	quotes *services.QuoteService
}

func NewQuoteController(quotes *services.QuoteService) *QuoteController {
	return &QuoteController{quotes: quotes}
}

func (ctl *QuoteController) Submit(c *gin.Context) {
	var input quoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	quote, err := ctl.quotes.Submit(c.Request.Context(), services.QuoteInput{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Lat:       input.Lat,
		Lon:       input.Lon,
		Floorplan: input.Floorplan,
		Facade:    input.Facade,
		Options:   input.Options,
		Message:   input.Message,
	})
	if err != nil {
		// On the quote form an unknown address is a form error, not a
		// missing resource.
		if errors.Is(err, geocoding.ErrNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "address could not be located", "field": "address"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// Get serves the shared-quote link.
func (ctl *QuoteController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	quote, err := ctl.quotes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (ctl *QuoteController) List(c *gin.Context) {
	quotes, err := ctl.quotes.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": quotes})
}

func (ctl *QuoteController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input quoteStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	quote, err := ctl.quotes.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
