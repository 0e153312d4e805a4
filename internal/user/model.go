package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved:
		return true
	}
	return false
}

// User is stored in the users collection. Role and status stay absent
// until an administrator sets them.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Email    string               `bson:"email" json:"email"`
	Name     string               `bson:"name,omitempty" json:"name,omitempty"`
	Role     Role                 `bson:"role,omitempty" json:"role,omitempty"`
	Status   Status               `bson:"status,omitempty" json:"status,omitempty"`
	Cart     []primitive.ObjectID `bson:"cart,omitempty" json:"cart,omitempty"`
	Wishlist []primitive.ObjectID `bson:"wishlist,omitempty" json:"wishlist,omitempty"`
}

type RegisterInput struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type UpdateRoleInput struct {
	Role Role `json:"role"`
}

type UpdateStatusInput struct {
	Status Status `json:"status"`
}
