package models

// User is a row of the users table.
type User struct {
	UserID                string `db:"user_id"`
	Username              string `db:"username"`
	Name                  string `db:"name"`
	Email                 string `db:"email"`
	Profile               string `db:"profile"`
	About                 string `db:"about"`
	Role                  int16  `db:"role"`
	Salt                  string `db:"salt"`
	HashedPassword        string `db:"hashed_password"`
	AuthProvider          string `db:"auth_provider"`
	ProviderUserID        string `db:"provider_user_id"`
	PasswordLoginDisabled bool   `db:"password_login_disabled"`
	ResetPasswordLink     string `db:"reset_password_link"`
	IsAuthorOfTheMonth    bool   `db:"is_author_of_the_month"`
	AuditFields
}
