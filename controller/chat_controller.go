package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panchagiri/resume-chatbot/models"
	"github.com/panchagiri/resume-chatbot/services"
)

// ChatController handles the HTTP surface of the chatbot. It depends on the
// ChatService to perform the actual business logic.
type ChatController struct {
	chatService services.ChatService
}

// NewChatController is called from main.go to inject the service dependency.
func NewChatController(service services.ChatService) *ChatController {
	return &ChatController{
		chatService: service,
	}
}

// Index serves the static chat page.
func (c *ChatController) Index(ctx *gin.Context) {
	ctx.File("static/index.html")
}

// Chat is the Gin handler for POST /chat.
func (c *ChatController) Chat(ctx *gin.Context) {
	var req models.ChatRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	response, err := c.chatService.Chat(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(statusForError(err), models.ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Health is the Gin handler for GET /health. Always HTTP 200; the body
// carries the real initialization state.
func (c *ChatController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.chatService.Health(ctx.Request.Context()))
}

// statusForError maps the service's error kinds to HTTP status codes. Any
// untyped error is treated as an upstream failure.
func statusForError(err error) int {
	var reqErr *models.RequestError
	if !errors.As(err, &reqErr) {
		return http.StatusInternalServerError
	}
	switch reqErr.Kind {
	case models.KindBadRequest:
		return http.StatusBadRequest
	case models.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
