package model

// swagger:model User
type User struct {
	UUIDBase
	Username    string `gorm:"size:50;unique;not null" json:"username"`
	DisplayName string `gorm:"size:100;not null" json:"displayName"`
	TotalPoints int    `gorm:"default:0" json:"totalPoints"`
}

func (User) TableName() string {
	return "users"
}
