package models

// LoginRecord is an append-only audit row in the legacy log_history table,
// written once per successful sign-in. Rows are never updated or deleted.
//
// The pw column is kept for schema compatibility but always receives a
// masked value; plaintext credentials are never persisted.
type LoginRecord struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string `gorm:"column:username;size:64;not null" json:"username"`
	Password  string `gorm:"column:pw;size:255" json:"-"`
	SaveLogin string `gorm:"column:saveLogin;size:32" json:"saveLogin"` // formatted YYYY-MM-DD HH:MM:SS
}

// TableName pins the legacy table name.
func (LoginRecord) TableName() string {
	return "log_history"
}
