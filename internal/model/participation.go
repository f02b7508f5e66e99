package model

import "time"

// 参与记录状态，单向流转：registered → checked_in → checked_out → completed
const (
	ParticipationRegistered = "registered"
	ParticipationCheckedIn  = "checked_in"
	ParticipationCheckedOut = "checked_out"
	ParticipationCompleted  = "completed"
)

// Participation 一名学生对一场活动的参与记录
// (activity_id, user_id) 是业务主键，唯一索引保证并发下至多一行
type Participation struct {
	Model
	ActivityID   uint       `gorm:"not null;uniqueIndex:idx_participation_activity_user" json:"activity_id"`
	UserID       string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_participation_activity_user" json:"user_id"` // 学号
	Status       string     `gorm:"type:varchar(12);not null;default:registered" json:"status"`
	RegisteredAt *time.Time `json:"registered_at"`  // 报名时间，只写一次
	CheckedInAt  *time.Time `json:"checked_in_at"`  // 签到时间，只写一次
	CheckedOutAt *time.Time `json:"checked_out_at"` // 签退时间，只写一次
	Notes        string     `gorm:"type:varchar(255);" json:"notes"`
}

// StageRank 返回状态在生命周期中的序号，用于校验状态只能前进不能回退
func StageRank(status string) int {
	switch status {
	case ParticipationRegistered:
		return 0
	case ParticipationCheckedIn:
		return 1
	case ParticipationCheckedOut:
		return 2
	case ParticipationCompleted:
		return 3
	default:
		return -1
	}
}
