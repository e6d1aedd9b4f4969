package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	apperrors "github.com/gocomet/ride-records/pkg/errors"
	"github.com/gocomet/ride-records/pkg/logger"
)

// Recovery turns a panic into the generic server error body
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		appErr := apperrors.Internal(fmt.Errorf("panic: %v", recovered))

		log.Error("Panic recovered",
			logger.Any("panic", recovered),
			logger.String("path", c.Request.URL.Path),
			logger.String("request_id", GetRequestID(c)),
		)

		c.AbortWithStatusJSON(appErr.Status, appErr)
	})
}
