package upstream

import (
	"context"
	"net/http"

	"choosecare-bff/internal/models"
)

// ListDepartments returns the departments of one hospital.
func (c *Client) ListDepartments(ctx context.Context, token, hospitalID string) ([]models.Department, error) {
	return list[models.Department](ctx, c, "departments", "/hospitals/"+escape(hospitalID)+"/departments", token, nil)
}

func (c *Client) CreateDepartment(ctx context.Context, token string, d models.Department) (models.Department, error) {
	body, ct, err := jsonBody(d)
	if err != nil {
		return models.Department{}, mutationFailure("add department", err)
	}
	return send[models.Department](ctx, c, "add department", http.MethodPost, "/departments", token, body, ct)
}

func (c *Client) UpdateDepartment(ctx context.Context, token string, d models.Department) (models.Department, error) {
	body, ct, err := jsonBody(d)
	if err != nil {
		return models.Department{}, mutationFailure("update department", err)
	}
	return send[models.Department](ctx, c, "update department", http.MethodPut, "/departments/"+escape(string(d.ID)), token, body, ct)
}

func (c *Client) DeleteDepartment(ctx context.Context, token, id string) error {
	return c.remove(ctx, "delete department", "/departments/"+escape(id), token)
}
