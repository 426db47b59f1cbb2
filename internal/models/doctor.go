package models

type Doctor struct {
	ID             ID      `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Mail           string  `json:"mail"`
	Specialization string  `json:"specialization"`
	Experience     int     `json:"experience"`
	Fee            float64 `json:"fee"`
	Education      string  `json:"education"`
	DepartmentID   ID      `json:"departmentId"`
	CabinNumber    string  `json:"cabinNumber"`
	Picture        *string `json:"picture"`
}

func (d Doctor) EntityType() string { return EntityDoctor }

func (d Doctor) RecordID() string { return string(d.ID) }

func (d Doctor) PictureURL() *string { return d.Picture }

func (d *Doctor) SetPicture(url *string) { d.Picture = url }

func (d Doctor) SearchFields() []string { return []string{d.Name, d.Specialization} }
