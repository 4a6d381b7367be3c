package httpx

import (
	"github.com/Gunvolt24/wb_streams/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID — заголовок сквозного идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware — сквозной request_id для read API:
// клиентский заголовок уважается, при его отсутствии генерируется UUID;
// идентификатор кладётся в контекст (его подхватит логгер) и
// возвращается клиенту тем же заголовком.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header(HeaderRequestID, rid)

		c.Request = c.Request.WithContext(ctxmeta.WithRequestID(c.Request.Context(), rid))

		c.Next()
	}
}
