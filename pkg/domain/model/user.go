package model

import (
	"time"

	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// User is a member of the editorial staff.
type User struct {
	ID        types.UserID
	Name      string
	Role      types.Role
	CreatedAt time.Time
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cloned := *u
	return &cloned
}
