package Models

import (
	"gorm.io/gorm"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleManager = "manager"
	RoleCashier = "cashier"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Email     string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  []byte `json:"-"`
	FirstName string `json:"first_name" gorm:"size:50"`
	LastName  string `json:"last_name" gorm:"size:50"`
	Role      string `json:"role" gorm:"size:20;default:cashier"`
}

// ValidRole reports whether role is one of the known role strings.
func ValidRole(role string) bool {
	return role == RoleManager || role == RoleCashier || role == RoleAdmin
}

func (u *User) SetPassword(raw string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword(u.Password, []byte(raw)) == nil
}

// Elevated reports whether the user can see data beyond their own bills.
func (u *User) Elevated() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
