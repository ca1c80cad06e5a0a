package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/session"
	"github.com/spacesedan/sentilens/internal/table"
)

const defaultPreviewRows = 20

type Handlers struct {
	store          *session.Store
	maxUploadBytes int64
}

func New(store *session.Store, maxUploadBytes int64) *Handlers {
	return &Handlers{store: store, maxUploadBytes: maxUploadBytes}
}

// Register mounts the API on r.
func (h *Handlers) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.POST("/sessions", h.CreateSession)
		api.POST("/sessions/:id/upload", h.Upload)
		api.GET("/sessions/:id/table", h.Table)
		api.GET("/sessions/:id/charts/:chart", h.Chart)
		api.GET("/sessions/:id/download", h.Download)
		api.DELETE("/sessions/:id", h.DeleteSession)
		api.POST("/text", h.AnalyzeText)
	}
}

func (h *Handlers) CreateSession(c *gin.Context) {
	s := h.store.Create()
	c.JSON(http.StatusCreated, gin.H{"session_id": s.ID.String()})
}

func (h *Handlers) DeleteSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	h.store.Delete(s.ID)
	c.Status(http.StatusNoContent)
}

func (h *Handlers) Upload(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a CSV file in form field \"file\""})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	report, err := s.Upload(c.Request.Context(), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) Table(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPreviewRows)))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}

	var label models.Label
	if raw := c.Query("label"); raw != "" {
		var ok bool
		if label, ok = models.ParseLabel(raw); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "label must be Positive, Neutral or Negative"})
			return
		}
	}

	rows, err := s.Preview(limit, label, c.QueryArray("column")...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (h *Handlers) Chart(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var (
		counts []table.ValueCount
		err    error
	)
	switch c.Param("chart") {
	case "polarity":
		counts, err = s.PolarityDistribution()
	case "compound":
		counts, err = s.CompoundDistribution()
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart, expected polarity or compound"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chart": c.Param("chart"), "counts": counts})
}

func (h *Handlers) Download(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	data, err := s.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+table.ExportFileName+`"`)
	c.Data(http.StatusOK, table.ExportMIME, data)
}

type textRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
}

func (h *Handlers) AnalyzeText(c *gin.Context) {
	var request textRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var (
		report *session.TextReport
		err    error
	)
	// Without a session id the text is analyzed without creating a session.
	response := gin.H{}
	if request.SessionID == "" {
		report, err = session.AnalyzeText(c.Request.Context(), h.store.Analyzers(), request.Text)
	} else {
		id, parseErr := uuid.Parse(request.SessionID)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
			return
		}
		s, ok := h.store.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		response["session_id"] = s.ID.String()
		report, err = s.AnalyzeText(c.Request.Context(), request.Text)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response["report"] = report
	response["lines"] = report.Lines()
	c.JSON(http.StatusOK, response)
}

func (h *Handlers) lookup(c *gin.Context) (*session.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}
	s, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}

func respondError(c *gin.Context, err error) {
	var (
		inputErr *table.InputError
		serErr   *table.SerializationError
	)
	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": inputErr.Error()})
	case errors.Is(err, session.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrNoTable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, table.ErrUnknownColumn):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &serErr):
		slog.Error("[Handlers] Export failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": serErr.Error()})
	default:
		slog.Error("[Handlers] Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
	}
}
