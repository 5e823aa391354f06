package models

import "time"

// User is an operator account stored in the 'users' table. Unlike the
// document collections this is a relational model.
type User struct {
	ID          string     `json:"id" db:"id"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Name        string     `json:"name" db:"name"`
	RoleType    RoleType   `json:"roleType" db:"role_type"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// LocalSession is the persisted record for a local-override login. It is
// written on bypass login and survives restarts until explicit logout or
// a successful managed login.
type LocalSession struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      RoleType  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Device is a registered push target backed by an SNS platform endpoint.
type Device struct {
	ID          string    `json:"id" db:"id"`
	Platform    string    `json:"platform" db:"platform"`
	TokenHash   string    `json:"-" db:"token_hash"`
	EndpointARN string    `json:"-" db:"endpoint_arn"`
	Enabled     bool      `json:"enabled" db:"enabled"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
