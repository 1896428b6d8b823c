package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/verdupulse/internal/domain/dto"
	"github.com/guttosm/verdupulse/internal/logger"
)

// ErrorHandler is a last-resort net for errors attached to the context
// via c.Error that no handler converted into a response. It logs the
// final error and answers with the standardized 500 body.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Msg("unhandled error")

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error", err))
}

// AbortWithError writes the standardized error body with the given
// status and stops the chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
