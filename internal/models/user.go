package models

// User is a row of the users table. The role-specific profile is stored as JSONB next
// to the role discriminator.
type User struct {
	UserID           string  `db:"user_id"`
	Name             string  `db:"name"`
	Email            string  `db:"email"`
	PasswordHash     *string `db:"password_hash"`
	Role             string  `db:"role"`
	Profile          []byte  `db:"profile"`
	IsActive         bool    `db:"is_active"`
	IsVerified       bool    `db:"is_verified"`
	QuietStartMinute *int    `db:"quiet_start_minute"`
	QuietEndMinute   *int    `db:"quiet_end_minute"`
	AuditFields
}
