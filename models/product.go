package models

// Product is a menu item in the legacy product table.
type Product struct {
	FoodID    uint    `gorm:"column:foodid;primaryKey;autoIncrement" json:"foodid"`
	FoodName  string  `gorm:"column:foodname;size:128;not null" json:"foodname"`
	Detail    string  `gorm:"column:detail;size:1024" json:"detail"`
	Price     float64 `gorm:"column:price" json:"price"`
	Category  string  `gorm:"column:category;size:64" json:"category"`
	Image     *string `gorm:"column:image;size:255" json:"image"`
	Promotion bool    `gorm:"column:promotion;default:false" json:"promotion"`

	// ImageURL is computed per request: an absolute /uploads URL, the
	// default image path on list endpoints, or null on single-item reads
	// when no image is referenced.
	ImageURL *string `gorm:"-" json:"imageUrl"`
}

// TableName pins the legacy table name.
func (Product) TableName() string {
	return "product"
}
