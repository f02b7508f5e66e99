package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"student-activity-system/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any) (resp response.ResponseBody) {
	w := DoRawRequest(t, handlerFunc, nil, request)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

// DoRawRequest 执行处理函数并返回原始响应，params 用于注入路径参数
func DoRawRequest(t *testing.T, handlerFunc gin.HandlerFunc, params gin.Params, request any) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	requestBytes, err := json.Marshal(request)
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(requestBytes))
	c.Params = params
	handlerFunc(c)
	return w
}
