package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/agentchat/api/http/presenter"
	"github.com/artem13815/agentchat/pkg/chat"
)

type ChatHandler struct {
	uc chat.UseCase
}

func NewChatHandler(uc chat.UseCase) *ChatHandler { return &ChatHandler{uc: uc} }

// Chat forwards the conversation to the selected model and returns the last
// assistant message.
// @Summary Ask the agent
// @Description Validates model_name against the allow-list, runs one agent turn (optionally with web search) and returns the final answer.
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   input body chat.Request true "model, system prompt, messages and search flag"
// @Success 200 {object} chat.Response
// @Failure 400 {object} presenter.ErrorResponse "Model not allowed or invalid JSON"
// @Failure 500 {object} presenter.ErrorResponse "Upstream failure summary"
// @Router  /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req chat.Request
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	resp, err := h.uc.Chat(c.UserContext(), req)
	if err != nil {
		var vErr *chat.ValidationError
		if errors.As(err, &vErr) {
			return presenter.Error(c, http.StatusBadRequest, vErr.Error())
		}
		// UpstreamError.Error() is the formatted summary; the cause itself is never serialized.
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, resp)
}
