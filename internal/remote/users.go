package remote

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

func (c *Client) RegisterCustomer(ctx context.Context, name, email, password string) (int64, error) {
	var out registerEnvelope
	body := registerRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, "RegisterCustomer", http.MethodPost, "/api/users/register/customer", nil, body, &out); err != nil {
		return 0, err
	}
	return out.UserID, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	var out loginEnvelope
	body := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, "Login", http.MethodPost, "/api/users/login", nil, body, &out); err != nil {
		return domain.User{}, err
	}
	return mapUser(out.userDTO), nil
}

func (c *Client) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	var out userEnvelope
	if err := c.do(ctx, "GetUser", http.MethodGet, "/api/users/"+strconv.FormatInt(userID, 10), nil, nil, &out); err != nil {
		return domain.User{}, err
	}
	return mapUser(out.User), nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out usersEnvelope
	if err := c.do(ctx, "ListUsers", http.MethodGet, "/api/users", nil, nil, &out); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, mapUser(u))
	}
	return users, nil
}

func mapUser(u userDTO) domain.User {
	return domain.User{
		ID:       u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Role:     domain.Role(u.Role),
	}
}
