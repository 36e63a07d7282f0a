package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam разбирает числовой параметр пути (id викторины или записи)
// и кладет его в контекст gin как uint под ключом contextKey.
// Нечисловое или отрицательное значение завершает запрос с 400.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("%s must be a non-negative integer, got %q", paramName, raw),
			})
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
