package panels

import (
	"context"
	"net/url"
	"strings"

	"github.com/sarangart/agrizen-gateway/pkg/enums"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/pagination"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

// UserPage is one page of the admin account table.
type UserPage struct {
	Users []types.UserRecord `json:"users"`
	Meta  pagination.Meta    `json:"meta"`
}

// Users lists accounts, filtered by a name/email substring and paginated.
func (s *Service) Users(ctx context.Context, page int, search string) (UserPage, error) {
	var users []types.UserRecord
	if err := s.upstream.Get(ctx, upstream.EndpointUsers, nil, &users); err != nil {
		return UserPage{}, err
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := users[:0]
		for _, user := range users {
			if strings.Contains(strings.ToLower(user.Name), needle) ||
				strings.Contains(strings.ToLower(user.Email), needle) {
				filtered = append(filtered, user)
			}
		}
		users = filtered
	}

	pageItems, meta := pagination.Paginate(users, page, pagination.DefaultPageSize)
	return UserPage{Users: pageItems, Meta: meta}, nil
}

// SaveUserInput creates or updates an account. A non-empty ID means update;
// the password is only sent when set.
type SaveUserInput struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password,omitempty"`
}

// SaveUser writes the account through the backend.
func (s *Service) SaveUser(ctx context.Context, input SaveUserInput) error {
	role, err := enums.ParseRole(input.Role)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}

	payload := map[string]any{
		"name":  input.Name,
		"email": input.Email,
		"role":  role,
	}
	if input.Password != "" {
		payload["password"] = input.Password
	}

	if input.ID != "" {
		payload["id"] = input.ID
		return s.upstream.PutJSON(ctx, upstream.EndpointUsers, payload, nil)
	}
	if input.Password == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "password is required for new accounts")
	}
	return s.upstream.PostJSON(ctx, upstream.EndpointUsers, payload, nil)
}

// DeleteUser removes an account.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	query := url.Values{"id": []string{id}}
	return s.upstream.Delete(ctx, upstream.EndpointUsers, query)
}
