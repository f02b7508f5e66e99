package scan

import (
	"testing"
	"time"

	"student-activity-system/test"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 并发首扫竞争：插入撞唯一索引时在事务内重读，按重复签到返回
func TestApplyCheckInInsertRace(t *testing.T) {
	db, mock := test.NewMockDB(t)

	checkedInAt := time.Now().Add(-time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `participation` (.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(participationColumns()))
	mock.ExpectExec("INSERT INTO `participation`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectQuery("SELECT (.+) FROM `participation`").
		WillReturnRows(sqlmock.NewRows(participationColumns()).
			AddRow(7, 1, "202301001", "checked_in", checkedInAt, checkedInAt, nil, ""))
	mock.ExpectCommit()

	p, created, scanErr, err := applyCheckIn(db, 1, "202301001", time.Now())

	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, scanErr)
	assert.Equal(t, CodeAlreadyCheckedIn, scanErr.Code)
	require.NotNil(t, p)
	assert.Equal(t, "checked_in", p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 锁外状态被并发改写时条件更新不命中，事务回滚并上抛错误
func TestApplyCheckInGuardedUpdateMiss(t *testing.T) {
	db, mock := test.NewMockDB(t)

	registeredAt := time.Now().Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `participation` (.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(participationColumns()).
			AddRow(7, 1, "202301001", "registered", registeredAt, nil, nil, ""))
	mock.ExpectExec("UPDATE `participation` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, _, scanErr, err := applyCheckIn(db, 1, "202301001", time.Now())

	require.Error(t, err)
	assert.Nil(t, scanErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 严格模式下 registered 记录不允许签退：无写入，checked_out_at 保持空
func TestApplyCheckOutRejectsRegisteredWhenStrict(t *testing.T) {
	db, mock := test.NewMockDB(t)

	registeredAt := time.Now().Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `participation` (.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(participationColumns()).
			AddRow(7, 1, "202301001", "registered", registeredAt, nil, nil, ""))
	mock.ExpectCommit()

	_, _, scanErr, err := applyCheckOut(db, 1, "202301001", time.Now(), false)

	require.NoError(t, err)
	require.NotNil(t, scanErr)
	assert.Equal(t, CodeNotCheckedIn, scanErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 宽松模式下 registered → checked_out 作为显式独立转移，不补 checked_in_at
func TestApplyCheckOutDirectFromRegistered(t *testing.T) {
	db, mock := test.NewMockDB(t)

	registeredAt := time.Now().Add(-time.Hour)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `participation` (.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(participationColumns()).
			AddRow(7, 1, "202301001", "registered", registeredAt, nil, nil, ""))
	mock.ExpectExec("UPDATE `participation` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, outcome, scanErr, err := applyCheckOut(db, 1, "202301001", now, true)

	require.NoError(t, err)
	assert.Nil(t, scanErr)
	assert.Equal(t, checkOutDirect, outcome)
	assert.Equal(t, "checked_out", p.Status)
	assert.Nil(t, p.CheckedInAt)
	require.NotNil(t, p.CheckedOutAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 签退写入保持 checked_in_at 不变，只补 checked_out_at
func TestApplyCheckOutKeepsCheckInTime(t *testing.T) {
	db, mock := test.NewMockDB(t)

	checkedInAt := time.Now().Add(-2 * time.Hour)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `participation` (.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(participationColumns()).
			AddRow(7, 1, "202301001", "checked_in", checkedInAt, checkedInAt, nil, ""))
	mock.ExpectExec("UPDATE `participation` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, outcome, scanErr, err := applyCheckOut(db, 1, "202301001", now, false)

	require.NoError(t, err)
	assert.Nil(t, scanErr)
	assert.Equal(t, checkOutApplied, outcome)
	require.NotNil(t, p.CheckedInAt)
	assert.Equal(t, checkedInAt.Format(time.RFC3339), p.CheckedInAt.Format(time.RFC3339))
	require.NotNil(t, p.CheckedOutAt)
	assert.Equal(t, now.Format(time.RFC3339), p.CheckedOutAt.Format(time.RFC3339))
	assert.NoError(t, mock.ExpectationsWereMet())
}
