package upstream

import (
	"context"
	"errors"
	"net/http"

	"choosecare-bff/internal/models"
)

// ErrInvalidCredentials is returned when the API rejects a login.
var ErrInvalidCredentials = errors.New("invalid email or password")

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, ct, err := jsonBody(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	var res loginResponse
	err = c.do(ctx, request{method: http.MethodPost, path: "/login", body: body, contentType: ct}, &res)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && (se.unauthorized() || se.Status == http.StatusBadRequest || se.Status == http.StatusNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", mutationFailure("log in", err)
	}
	if res.Token == "" {
		res.Token = res.AccessToken
	}
	if res.Token == "" {
		return "", &MutationError{Op: "log in", Message: "Login response carried no token", Err: errors.New("empty token")}
	}
	return res.Token, nil
}

func (c *Client) SignupStaff(ctx context.Context, token string, s models.StaffSignup) (models.Staff, error) {
	body, ct, err := jsonBody(s)
	if err != nil {
		return models.Staff{}, mutationFailure("sign up staff", err)
	}
	return send[models.Staff](ctx, c, "sign up staff", http.MethodPost, "/staff/signup", token, body, ct)
}
