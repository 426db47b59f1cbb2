package models

// Hospital is a hospital as served by the upstream API. The ID is always
// assigned by the server.
type Hospital struct {
	ID              ID      `json:"id"`
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	NumberOfDoctors int     `json:"numberOfDoctors"`
	NumberOfBeds    int     `json:"numberOfBeds"`
	AgeOfHospital   int     `json:"ageOfHospital"`
	Rating          float64 `json:"rating"`
	About           string  `json:"about"`
	ContactNumber   string  `json:"contactNumber"`
	Picture         *string `json:"picture"`
}

func (h Hospital) EntityType() string { return EntityHospital }

func (h Hospital) RecordID() string { return string(h.ID) }

func (h Hospital) PictureURL() *string { return h.Picture }

func (h *Hospital) SetPicture(url *string) { h.Picture = url }

// SearchFields are the texts a hospital list is filtered on.
func (h Hospital) SearchFields() []string { return []string{h.Name, h.City} }
