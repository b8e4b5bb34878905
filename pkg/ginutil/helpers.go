package ginutil

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamUint64 extracts a positive uint64 from path parameters.
// Zero is rejected since no row has id 0.
func ParamUint64(c *gin.Context, key string) (uint64, error) {
	value, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0, err
	}
	if value == 0 {
		return 0, strconv.ErrRange
	}
	return value, nil
}
