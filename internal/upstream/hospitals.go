package upstream

import (
	"context"
	"net/http"

	"choosecare-bff/internal/models"
)

// ListHospitals returns every hospital. token may be empty for patient screens.
func (c *Client) ListHospitals(ctx context.Context, token string) ([]models.Hospital, error) {
	return list[models.Hospital](ctx, c, "hospitals", "/hospitals", token, nil)
}

func (c *Client) GetHospital(ctx context.Context, token, id string) (models.Hospital, error) {
	return get[models.Hospital](ctx, c, "hospital", "/hospitals/"+escape(id), token)
}

func (c *Client) CreateHospital(ctx context.Context, token string, h models.Hospital, img *Image) (models.Hospital, error) {
	body, ct, err := multipartBody(h, img)
	if err != nil {
		return models.Hospital{}, mutationFailure("add hospital", err)
	}
	return send[models.Hospital](ctx, c, "add hospital", http.MethodPost, "/hospitals", token, body, ct)
}

// UpdateHospital replaces the full record, optionally with a new image.
func (c *Client) UpdateHospital(ctx context.Context, token string, h models.Hospital, img *Image) (models.Hospital, error) {
	body, ct, err := multipartBody(h, img)
	if err != nil {
		return models.Hospital{}, mutationFailure("update hospital", err)
	}
	return send[models.Hospital](ctx, c, "update hospital", http.MethodPut, "/hospitals/"+escape(string(h.ID)), token, body, ct)
}

func (c *Client) DeleteHospital(ctx context.Context, token, id string) error {
	return c.remove(ctx, "delete hospital", "/hospitals/"+escape(id), token)
}
