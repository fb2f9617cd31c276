package models

// Admin represents a back-office administrator account stored in the legacy
// myadmin table. The mypassword column holds a bcrypt hash and is never
// serialized.
type Admin struct {
	AdminID      uint    `gorm:"column:adminid;primaryKey;autoIncrement" json:"adminid"`
	FirstName    string  `gorm:"column:Fname;size:64" json:"Fname"`
	LastName     string  `gorm:"column:Lname;size:64" json:"Lname"`
	Username     string  `gorm:"column:username;size:64;not null" json:"username"`
	PasswordHash string  `gorm:"column:mypassword;size:255" json:"-"`
	Email        string  `gorm:"column:email;size:255" json:"email"`
	Tel          string  `gorm:"column:tel;size:32" json:"tel"`
	ProfileImage *string `gorm:"column:profile_image;size:255" json:"profile_image"`
}

// TableName pins the legacy table name.
func (Admin) TableName() string {
	return "myadmin"
}
