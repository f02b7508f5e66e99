package model

// 活动生命周期状态
const (
	ActivityStatusDraft     = "draft"
	ActivityStatusPublished = "published"
	ActivityStatusOngoing   = "ongoing"
	ActivityStatusCompleted = "completed"
	ActivityStatusCancelled = "cancelled"
)

// 活动级别
const (
	ActivityLevelFaculty    = "faculty"    // 院级活动，可限定参与组织
	ActivityLevelUniversity = "university" // 校级活动，不限组织
)

type Activity struct {
	Model
	Title           string `gorm:"type:varchar(255);not null" json:"title"`                       // 活动名称
	Description     string `gorm:"type:varchar(255);" json:"description"`                         // 活动描述
	Location        string `gorm:"type:varchar(255);" json:"location"`                            // 活动地点
	OwnerID         string `gorm:"type:varchar(20);not null" json:"owner_id"`                     // 创建人学号
	Status          string `gorm:"type:varchar(10);not null;default:draft" json:"status"`         // 生命周期状态
	Level           string `gorm:"type:varchar(10);not null;default:faculty" json:"level"`        // faculty 或 university
	EligibleOrgs    []uint `gorm:"serializer:json" json:"eligible_orgs"`                          // 可参与组织ID列表，仅院级活动生效
	StartDate       int64  `gorm:"not null" json:"start_date"`                                    // 开始日期 yyyymmdd
	EndDate         int64  `gorm:"not null" json:"end_date"`                                      // 结束日期 yyyymmdd
	StartTime       string `gorm:"type:varchar(5);" json:"start_time"`                            // 当日开始时刻 HH:MM，可空
	EndTime         string `gorm:"type:varchar(5);" json:"end_time"`                              // 当日结束时刻 HH:MM，可空
	Hours           uint   `gorm:"default:0" json:"hours"`                                        // 活动学时
	MaxParticipants uint   `gorm:"default:0" json:"max_participants"`                             // 人数上限，0表示不限制
	// 关联到用户
	User User `gorm:"foreignKey:OwnerID;references:StudentID" json:"user"`
}
