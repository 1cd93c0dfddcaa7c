package model

// swagger:model Category
type Category struct {
	UUIDBase
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:255" json:"icon"`
}

func (Category) TableName() string {
	return "categories"
}
