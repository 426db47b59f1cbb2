package upstream

import (
	"context"
	"net/http"

	"choosecare-bff/internal/models"
)

// ListDoctors returns the doctors of one department.
func (c *Client) ListDoctors(ctx context.Context, token, departmentID string) ([]models.Doctor, error) {
	return list[models.Doctor](ctx, c, "doctors", "/departments/"+escape(departmentID)+"/doctors", token, nil)
}

func (c *Client) GetDoctor(ctx context.Context, token, id string) (models.Doctor, error) {
	return get[models.Doctor](ctx, c, "doctor", "/doctors/"+escape(id), token)
}

func (c *Client) CreateDoctor(ctx context.Context, token string, d models.Doctor, img *Image) (models.Doctor, error) {
	body, ct, err := multipartBody(d, img)
	if err != nil {
		return models.Doctor{}, mutationFailure("add doctor", err)
	}
	return send[models.Doctor](ctx, c, "add doctor", http.MethodPost, "/doctors", token, body, ct)
}

func (c *Client) UpdateDoctor(ctx context.Context, token string, d models.Doctor, img *Image) (models.Doctor, error) {
	body, ct, err := multipartBody(d, img)
	if err != nil {
		return models.Doctor{}, mutationFailure("update doctor", err)
	}
	return send[models.Doctor](ctx, c, "update doctor", http.MethodPut, "/doctors/"+escape(string(d.ID)), token, body, ct)
}

func (c *Client) DeleteDoctor(ctx context.Context, token, id string) error {
	return c.remove(ctx, "delete doctor", "/doctors/"+escape(id), token)
}
