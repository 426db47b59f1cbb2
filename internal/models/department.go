package models

type Department struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	HospitalID  ID     `json:"hospitalId"`
}

func (d Department) RecordID() string { return string(d.ID) }

func (d Department) SearchFields() []string { return []string{d.Name, d.Description} }
