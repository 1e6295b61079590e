package analyze

import (
	"net/http"

	"codeberg.org/papergen/server/internal/analysis"
	"codeberg.org/papergen/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// Handler godoc
// @Summary Submit a repository for analysis
// @Description Accepts a repository URL and acknowledges it. Only POST is allowed.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body Request true "Repository to analyze"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 405 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/analyze [post]
func Handler(analyzer analysis.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			errors.MethodNotAllowed(c, "Method not allowed. Use POST.")
			return
		}

		// an unreadable body is reported the same way as a missing url.
		// any non-empty value is accepted and echoed as submitted
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil || req.RepoURL == "" {
			errors.ValidationError(c, "Repository URL is required", nil)
			return
		}

		result, err := analyzer.Analyze(c.Request.Context(), req.RepoURL)
		if err != nil {
			errors.InternalError(c, "failed to start analysis", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Message: result.Message,
			RepoURL: result.RepoURL,
		})
	}
}
