package db

import "time"

// Account 对应共享账户库中的 users 表。
// Password 为空表示无需密码；非空时保存 bcrypt 哈希（旧版数据可能为明文）。
type Account struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;not null" json:"username"`
	Password    string     `gorm:"not null" json:"-"`
	DBFile      string     `gorm:"column:db_file;uniqueIndex;not null" json:"db_file"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	HasPassword bool       `gorm:"not null" json:"has_password"`
}

// TableName 与原有账户库保持一致。
func (Account) TableName() string {
	return "users"
}
