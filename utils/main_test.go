package utils

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	Logger = zap.NewNop()
	Sugar = Logger.Sugar()
	os.Exit(m.Run())
}
