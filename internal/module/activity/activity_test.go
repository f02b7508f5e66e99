package activity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"student-activity-system/internal/global/database"
	"student-activity-system/internal/global/jwt"
	"student-activity-system/internal/global/response"
	"student-activity-system/internal/model"
	"student-activity-system/test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	(&ModuleActivity{}).Init()
	os.Exit(m.Run())
}

// doWithID 以指定路径ID和登录身份调用处理函数
func doWithID(t *testing.T, handler gin.HandlerFunc, id string, payload *jwt.Claims, body any) (resp response.ResponseBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	bodyBytes, err := json.Marshal(body)
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(string(bodyBytes)))
	c.Params = gin.Params{{Key: "id", Value: id}}
	if payload != nil {
		c.Set("payload", payload)
	}
	handler(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

func activityColumns() []string {
	return []string{"id", "title", "status", "level", "eligible_orgs",
		"start_date", "end_date", "max_participants", "owner_id"}
}

func expectActivityRow(mock sqlmock.Sqlmock, status string) {
	mock.ExpectQuery("SELECT (.+) FROM `activity`").
		WillReturnRows(sqlmock.NewRows(activityColumns()).
			AddRow(1, "志愿服务活动", status, "university", "[]", 20260901, 20260901, 0, "admin001"))
}

// 状态只能沿生命周期前进
func TestUpdateActivityStatusForwardOnly(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"draft_to_published", "draft", "published", true},
		{"published_to_ongoing", "published", "ongoing", true},
		{"ongoing_to_completed", "ongoing", "completed", true},
		{"ongoing_to_cancelled", "ongoing", "cancelled", true},
		{"completed_is_terminal", "completed", "ongoing", false},
		{"cancelled_is_terminal", "cancelled", "published", false},
		{"no_backward", "ongoing", "published", false},
		{"no_skip", "draft", "ongoing", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := test.NewMockDB(t)
			database.DB = db

			expectActivityRow(mock, tc.from)
			if tc.allowed {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE `activity` SET").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			}

			resp := doWithID(t, UpdateActivityStatus, "1", nil, StatusUpdateReq{Status: tc.to})

			if tc.allowed {
				test.NoError(t, resp)
			} else {
				assert.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateActivityStatusNotFound(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	mock.ExpectQuery("SELECT (.+) FROM `activity`").
		WillReturnRows(sqlmock.NewRows(activityColumns()))

	resp := doWithID(t, UpdateActivityStatus, "42", nil, StatusUpdateReq{Status: "published"})

	assert.Equal(t, response.ErrNotFound.Code, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func student() *jwt.Claims {
	return &jwt.Claims{Payload: jwt.Payload{StudentID: "202301001", RoleID: 0}}
}

// 报名开放中的活动，创建 registered 记录
func TestParticipateSuccess(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	expectActivityRow(mock, model.ActivityStatusPublished)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `participation`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	resp := doWithID(t, Participate, "1", student(), nil)

	test.NoError(t, resp)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, model.ParticipationRegistered, data["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 重复报名撞唯一索引，返回已存在
func TestParticipateDuplicate(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	expectActivityRow(mock, model.ActivityStatusOngoing)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `participation`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	resp := doWithID(t, Participate, "1", student(), nil)

	assert.Equal(t, response.ErrAlreadyExists.Code, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 草稿活动不开放报名
func TestParticipateDraftActivity(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	expectActivityRow(mock, model.ActivityStatusDraft)

	resp := doWithID(t, Participate, "1", student(), nil)

	assert.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 普通学生（role 0）经过路由中间件后必须能到达报名处理函数
func TestRouterStudentParticipate(t *testing.T) {
	db, mock := test.NewMockDB(t)
	database.DB = db

	expectActivityRow(mock, model.ActivityStatusPublished)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `participation`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	r := gin.New()
	(&ModuleActivity{}).InitRouter(r.Group("/api"))
	token := jwt.CreateToken(jwt.Payload{StudentID: "202301001", RoleID: 0})

	req := httptest.NewRequest(http.MethodPost, "/api/activity/participate/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.ResponseBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	test.NoError(t, resp)
	assert.NoError(t, mock.ExpectationsWereMet())

	// 管理员端点仍拒绝 role 0
	reqAdmin := httptest.NewRequest(http.MethodPut, "/api/activity/status/1",
		strings.NewReader(`{"status":"published"}`))
	reqAdmin.Header.Set("Authorization", "Bearer "+token)
	wAdmin := httptest.NewRecorder()
	r.ServeHTTP(wAdmin, reqAdmin)

	var respAdmin response.ResponseBody
	require.NoError(t, json.NewDecoder(wAdmin.Body).Decode(&respAdmin))
	assert.Equal(t, response.ErrUnauthorized.Code, respAdmin.Code)
}

func TestParticipateUnauthorized(t *testing.T) {
	db, _ := test.NewMockDB(t)
	database.DB = db

	resp := doWithID(t, Participate, "1", nil, nil)

	assert.Equal(t, response.ErrUnauthorized.Code, resp.Code)
}
