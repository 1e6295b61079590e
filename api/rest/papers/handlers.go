package papers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"codeberg.org/papergen/server/internal/errors"
	"codeberg.org/papergen/server/internal/generation"
	"codeberg.org/papergen/server/internal/logger"
	"codeberg.org/papergen/server/internal/metrics"
	"github.com/gin-gonic/gin"
)

// GenerateHandler godoc
// @Summary Generate a paper from documentation
// @Description Forwards the JSON body unchanged to the generation service. JSON answers are relayed as-is; document answers are returned as an ieee_paper.docx attachment.
// @Tags papers
// @Accept json
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param request body object true "Arbitrary JSON forwarded to the generation service"
// @Success 200 {object} object
// @Failure 400 {object} errors.ErrorResponse
// @Failure 405 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/generate_paper [post]
func GenerateHandler(client Relayer, throttle Throttle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			errors.MethodNotAllowed(c, "Method Not Allowed")
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
		if err != nil {
			metrics.RelayTotal.WithLabelValues("invalid_body").Inc()
			errors.BadRequest(c, "failed to read request body", err)
			return
		}

		// the body is otherwise opaque; it only has to be JSON
		if !json.Valid(body) {
			metrics.RelayTotal.WithLabelValues("invalid_body").Inc()
			errors.ValidationError(c, "request body must be valid JSON", nil)
			return
		}

		if throttle != nil && !throttle.Allow() {
			metrics.RelayTotal.WithLabelValues("throttled").Inc()
			logger.FromContext(c.Request.Context()).Warn("generation relay throttled")
			errors.TooManyRequests(c, "generation service is busy, try again shortly")
			return
		}

		result, err := client.Post(c.Request.Context(), generation.PathFromDocumentation, body)
		if err != nil {
			metrics.RelayTotal.WithLabelValues(errors.Classify(err).Category()).Inc()

			message := "generation service failed"
			if errors.Is(err, errors.ErrDecode) {
				message = "generation service returned an invalid response"
			}

			errors.BadGateway(c, message, err)
			return
		}

		metrics.RelayTotal.WithLabelValues(string(result.Kind)).Inc()

		switch result.Kind {
		case generation.KindArtifact:
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", generation.ArtifactFilename))
			c.Data(http.StatusOK, result.Artifact.ContentType, result.Artifact.Data)

		default:
			c.Data(http.StatusOK, "application/json; charset=utf-8", result.Raw)
		}
	}
}
