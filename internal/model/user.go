package model

// 用户账号状态
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

type User struct {
	Model
	StudentID    string `gorm:"type:varchar(20);uniqueIndex;not null" json:"student_id"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"`
	RoleID       int    `gorm:"default:0;not null" json:"role_id"` // 0 学生，1 管理员
	NickName     string `gorm:"type:varchar(20);not null" json:"nick_name"`
	FirstName    string `gorm:"type:varchar(100);" json:"first_name"`
	LastName     string `gorm:"type:varchar(100);" json:"last_name"`
	Status       string `gorm:"type:varchar(10);not null;default:active" json:"status"` // active/inactive/suspended
	DepartmentID *uint  `gorm:"" json:"department_id"`                                  // 所属系所ID，可为空
}

// DisplayName 返回扫码反馈中展示的姓名，姓名为空时退回昵称
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.NickName
	}
	return name
}
