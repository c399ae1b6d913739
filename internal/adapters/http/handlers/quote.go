package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basedfin/quotecast/internal/adapters/http/dto"
	"github.com/basedfin/quotecast/internal/app"
)

// QuoteHandler serves the display surface: a randomly picked quote and
// the cast operation.
type QuoteHandler struct {
	library    *app.Library
	picker     *app.Picker
	dispatcher *app.Dispatcher
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(library *app.Library, picker *app.Picker, dispatcher *app.Dispatcher) *QuoteHandler {
	return &QuoteHandler{
		library:    library,
		picker:     picker,
		dispatcher: dispatcher,
	}
}

// GetQuote handles GET /api/v1/quote
// Returns one quote picked uniformly from the working list. The list is
// never empty once the library is seeded, so this cannot fail.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote := h.picker.Pick(h.library.Quotes())

	c.JSON(http.StatusOK, dto.QuoteResponse{Quote: string(quote)})
}

// Cast handles POST /api/v1/quote/cast
// Pushes the requested text (or a freshly picked quote when the body
// carries none) through the cast channels and reports which channel
// handled it.
func (h *QuoteHandler) Cast(c *gin.Context) {
	var req dto.CastRequest

	// An empty body is a valid "cast the current quote" request.
	if c.Request.ContentLength > 0 {
		if err := dto.BindAndValidate(c, &req); err != nil {
			respondBindingError(c, err)
			return
		}
	}

	text := req.Text
	if text == "" {
		text = string(h.picker.Pick(h.library.Quotes()))
	}

	result := h.dispatcher.Dispatch(c.Request.Context(), text)

	c.JSON(http.StatusOK, dto.CastResponse{
		Channel: result.Channel,
		Notice:  result.Notice,
	})
}

// RegisterRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quote := rg.Group("/quote")
	quote.GET("", h.GetQuote)
	quote.POST("/cast", h.Cast)
}
