package model

type Department struct {
	Model
	Name           string `gorm:"type:varchar(255);not null" json:"name"`                       // 系所名称
	Code           string `gorm:"type:varchar(10);not null;uniqueIndex:idx_dept_code_org" json:"code"` // 系所编码，组织内唯一
	OrganizationID uint   `gorm:"not null;uniqueIndex:idx_dept_code_org" json:"organization_id"`       // 所属组织ID
	Enabled        bool   `gorm:"not null;default:true" json:"enabled"`                         // 是否启用
	// 关联到组织
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization"`
}
