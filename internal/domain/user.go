package domain

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleOwner    UserRole = "owner"
	RoleDelivery UserRole = "delivery"
)

type User struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}
