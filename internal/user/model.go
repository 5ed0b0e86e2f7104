package user

// User is the single persisted entity: one row in the users table.
//
// No column-level constraints back the required-field rule on purpose; the
// handlers are the only enforcement point, so a row written by other tooling
// is surfaced as-is.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"size:64" json:"username"`
	Email    string `gorm:"size:255" json:"email"`
	Token    string `gorm:"size:255" json:"token"`
}

func (User) TableName() string { return "users" }
