package types

import (
	"encoding/json"

	"github.com/sarangart/agrizen-gateway/pkg/enums"
)

// UserProfile is the authenticated identity cached in the session store. Its
// presence is the sole client-side authorization signal; the backend must
// re-validate every mutating call independently.
type UserProfile struct {
	UserID FlexInt    `json:"user_id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   enums.Role `json:"role"`
}

// UnmarshalJSON tolerates the legacy payload drift: the user id arrives as
// "userid", "user_id", or "id" depending on the endpoint, and role casing is
// inconsistent. Unknown roles degrade to Farmer, mirroring the original
// client's else-branch.
func (u *UserProfile) UnmarshalJSON(data []byte) error {
	var aux struct {
		UserID    FlexInt `json:"userid"`
		AltUserID FlexInt `json:"user_id"`
		ID        FlexInt `json:"id"`
		Name      string  `json:"name"`
		Email     string  `json:"email"`
		Role      string  `json:"role"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id := aux.UserID
	if id == 0 {
		id = aux.AltUserID
	}
	if id == 0 {
		id = aux.ID
	}

	role, err := enums.ParseRole(aux.Role)
	if err != nil {
		role = enums.RoleFarmer
	}

	*u = UserProfile{
		UserID: id,
		Name:   aux.Name,
		Email:  aux.Email,
		Role:   role,
	}
	return nil
}
