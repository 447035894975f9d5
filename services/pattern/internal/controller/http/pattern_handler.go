package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"pattern-share/pkg/logger"
	"pattern-share/services/pattern/internal/entity"
	"pattern-share/services/pattern/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PatternHandler struct {
	patternUseCase usecase.PatternUseCase
	logger         *logger.Logger
}

func NewPatternHandler(patternUseCase usecase.PatternUseCase, logger *logger.Logger) *PatternHandler {
	return &PatternHandler{
		patternUseCase: patternUseCase,
		logger:         logger,
	}
}

type UploadPatternRequest struct {
	PatternURL   string `json:"patternUrl" binding:"required"`
	PatternName  string `json:"patternName" binding:"required"`
	AuthorName   string `json:"authorName" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

type UploadPatternResponse struct {
	Message string          `json:"message"`
	Pattern *entity.Pattern `json:"pattern"`
}

type LikeResponse struct {
	Likes int64 `json:"likes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Home godoc
// @Summary      API status
// @Description  Confirms the pattern API is reachable
// @Tags         patterns
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *PatternHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the pattern library API"})
}

// GetPattern godoc
// @Summary      Get pattern by slug
// @Description  Returns the full pattern record for a slug
// @Tags         patterns
// @Produce      json
// @Param        slug path string true "Pattern slug"
// @Success      200  {object}  entity.Pattern
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /pattern/{slug} [get]
func (h *PatternHandler) GetPattern(c *gin.Context) {
	pattern, err := h.patternUseCase.GetPattern(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err, "get pattern")
		return
	}

	c.JSON(http.StatusOK, pattern)
}

// SearchPatterns godoc
// @Summary      Search patterns
// @Description  Case-insensitive substring search over pattern name, author and description, newest first
// @Tags         patterns
// @Produce      json
// @Param        q query string true "Search text"
// @Success      200  {array}   entity.Pattern
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /search [get]
func (h *PatternHandler) SearchPatterns(c *gin.Context) {
	patterns, err := h.patternUseCase.SearchPatterns(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err, "search patterns")
		return
	}

	if patterns == nil {
		patterns = []*entity.Pattern{}
	}
	c.JSON(http.StatusOK, patterns)
}

// UploadPattern godoc
// @Summary      Upload a pattern
// @Description  Stores pattern metadata after moderation and file type checks
// @Tags         patterns
// @Accept       json
// @Produce      json
// @Param        pattern body UploadPatternRequest true "Pattern metadata"
// @Success      201  {object}  UploadPatternResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /upload [post]
func (h *PatternHandler) UploadPattern(c *gin.Context) {
	var req UploadPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	pattern, err := h.patternUseCase.UploadPattern(c.Request.Context(), entity.PatternInput{
		PatternURL:   req.PatternURL,
		PatternName:  req.PatternName,
		AuthorName:   req.AuthorName,
		Description:  req.Description,
		Slug:         req.Slug,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		h.respondError(c, err, "upload pattern")
		return
	}

	c.JSON(http.StatusCreated, UploadPatternResponse{
		Message: "Pattern uploaded successfully",
		Pattern: pattern,
	})
}

// LikePattern godoc
// @Summary      Like a pattern
// @Description  Increments the like counter and returns the new total
// @Tags         patterns
// @Produce      json
// @Param        slug path string true "Pattern slug"
// @Success      200  {object}  LikeResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /like/{slug} [post]
func (h *PatternHandler) LikePattern(c *gin.Context) {
	likes, err := h.patternUseCase.LikePattern(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err, "like pattern")
		return
	}

	c.JSON(http.StatusOK, LikeResponse{Likes: likes})
}

func (h *PatternHandler) respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, entity.ErrPatternNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Pattern not found"})
	case entity.IsValidationError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Failed to %s (%s %s): %v", action, c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// bindingErrorMessage names the missing JSON fields instead of Go struct fields.
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "invalid request body"
	}

	reqType := reflect.TypeOf(UploadPatternRequest{})
	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		name := fe.Field()
		if sf, ok := reqType.FieldByName(fe.StructField()); ok {
			name = strings.Split(sf.Tag.Get("json"), ",")[0]
		}
		fields = append(fields, name)
	}
	return entity.ErrMissingField.Error() + ": " + strings.Join(fields, ", ")
}
