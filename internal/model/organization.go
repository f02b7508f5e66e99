package model

// 组织类型
const (
	OrgTypeFaculty = "faculty" // 学院，可下设系所并允许学生注册
	OrgTypeOffice  = "office"  // 行政单位，不下设系所
)

type Organization struct {
	Model
	Name        string `gorm:"type:varchar(255);not null" json:"name"`                  // 组织名称
	Code        string `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`       // 组织编码
	Type        string `gorm:"type:varchar(10);not null;default:faculty" json:"type"`   // faculty 或 office
	Description string `gorm:"type:varchar(255);" json:"description"`                   // 组织描述
	Enabled     bool   `gorm:"not null;default:true" json:"enabled"`                    // 是否启用
}
