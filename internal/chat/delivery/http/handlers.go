package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/MorgandeCesso/regulus-back/internal/chat"
	"github.com/MorgandeCesso/regulus-back/internal/middleware"
	appErrors "github.com/MorgandeCesso/regulus-back/pkg/errors"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"

	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds in-memory file intake.
const maxUploadSize = 20 << 20

type ChatHandlers struct {
	uc     chat.ChatUsecase
	logger *logger.Logger
}

func NewChatHandlers(uc chat.ChatUsecase, logger *logger.Logger) *ChatHandlers {
	return &ChatHandlers{uc: uc, logger: logger}
}

type createChatRequest struct {
	Title *string `json:"title"`
}

func (h *ChatHandlers) CreateChat(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}

	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		respondError(c, appErrors.InvalidArg(err.Error()))
		return
	}

	dto, err := h.uc.CreateChat(c.Request.Context(), u.ID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

type sendMessageRequest struct {
	ChatID  *int64 `json:"chat_id"`
	Content string `json:"content" binding:"required"`
}

func (h *ChatHandlers) SendMessage(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, appErrors.InvalidArg(err.Error()))
		return
	}

	dto, err := h.uc.SendMessage(c.Request.Context(), chat.SendMessageCommand{
		UserID:   u.ID,
		Username: u.Username,
		ChatID:   req.ChatID,
		Content:  req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ChatHandlers) ListChats(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}

	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	dto, err := h.uc.ListChats(c.Request.Context(), u.ID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ChatHandlers) ListMessages(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}
	chatID, err := pathID(c, "chatID")
	if err != nil {
		respondError(c, err)
		return
	}

	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	dto, err := h.uc.ListMessages(c.Request.Context(), u.ID, chatID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ChatHandlers) DeleteChat(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}
	chatID, err := pathID(c, "chatID")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.uc.DeleteChat(c.Request.Context(), u.ID, chatID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *ChatHandlers) ResetChat(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}
	chatID, err := pathID(c, "chatID")
	if err != nil {
		respondError(c, err)
		return
	}

	dto, err := h.uc.ResetChat(c.Request.Context(), u.ID, chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ChatHandlers) UploadFile(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}
	chatID, err := pathID(c, "chatID")
	if err != nil {
		respondError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, appErrors.InvalidArg("multipart field 'file' is required"))
		return
	}
	if header.Size > maxUploadSize {
		respondError(c, appErrors.InvalidArg("file is too large"))
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, appErrors.Internal("failed to read uploaded file"))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		respondError(c, appErrors.Internal("failed to read uploaded file"))
		return
	}

	dto, err := h.uc.UploadFile(c.Request.Context(), chat.UploadFileCommand{
		UserID:   u.ID,
		ChatID:   chatID,
		Filename: header.Filename,
		Content:  content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *ChatHandlers) ListFiles(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}
	chatID, err := pathID(c, "chatID")
	if err != nil {
		respondError(c, err)
		return
	}

	files, err := h.uc.ListFiles(c.Request.Context(), u.ID, chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": files})
}

func (h *ChatHandlers) DeleteFile(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}
	chatID, err := pathID(c, "chatID")
	if err != nil {
		respondError(c, err)
		return
	}
	fileID, err := pathID(c, "fileID")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.uc.DeleteFile(c.Request.Context(), u.ID, chatID, fileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.InvalidArg("invalid " + name)
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

func respondError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(appErrors.HTTPStatus(err), gin.H{"error": appErrors.Convert(err)})
}
