package domain

// Caller is the session-bound identity handed explicitly to every operation
// that needs to know who is asking, instead of each call site re-deriving it
// from ambient session state.
type Caller struct {
	UserID uint     `json:"user_id"`
	Role   RoleName `json:"role"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdministrator }

func (c Caller) Authenticated() bool { return c.UserID != 0 }
