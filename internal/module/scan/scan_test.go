package scan

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"student-activity-system/internal/module/qrtoken"
	"student-activity-system/test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	(&ModuleScan{}).Init()
	os.Exit(m.Run())
}

// doScan 以指定活动ID执行扫码处理函数并解析扫码响应
func doScan(t *testing.T, handler gin.HandlerFunc, activityID string, body any) (result ScanResult) {
	w := test.DoRawRequest(t, handler,
		gin.Params{{Key: "activity_id", Value: activityID}}, body)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	return
}

// qrFor 构造一个带较长有效期的合法二维码载荷
func qrFor(studentID string) string {
	return qrtoken.Encode(&qrtoken.Claim{
		UID: studentID,
		TS:  time.Now().UnixMilli(),
		Exp: time.Now().Add(3 * time.Minute).UnixMilli(),
	})
}

// today 以活动日期字段的格式返回今天
func today() int64 {
	return dateInt(time.Now())
}

func activityColumns() []string {
	return []string{"id", "title", "status", "level", "eligible_orgs",
		"start_date", "end_date", "max_participants", "owner_id"}
}

func userColumns() []string {
	return []string{"id", "student_id", "nick_name", "first_name", "last_name",
		"role_id", "status", "department_id"}
}

func participationColumns() []string {
	return []string{"id", "activity_id", "user_id", "status",
		"registered_at", "checked_in_at", "checked_out_at", "notes"}
}

// expectActivity 预置活动查询结果
func expectActivity(mock sqlmock.Sqlmock, status, level, eligibleOrgs string, maxParticipants uint) {
	mock.ExpectQuery("SELECT (.+) FROM `activity`").
		WillReturnRows(sqlmock.NewRows(activityColumns()).
			AddRow(1, "志愿服务活动", status, level, eligibleOrgs,
				today(), today(), maxParticipants, "admin001"))
}

// expectUser 预置学生查询结果
func expectUser(mock sqlmock.Sqlmock, status string, departmentID any) {
	mock.ExpectQuery("SELECT (.+) FROM `user`").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(10, "202301001", "小明", "明", "王", 0, status, departmentID))
}
