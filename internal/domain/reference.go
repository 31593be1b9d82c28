package domain

type Institution struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Web         string `json:"web,omitempty"`
}

type Facility struct {
	ID           int32        `json:"id"`
	Name         string       `json:"name"`
	Abbreviation string       `json:"abbreviation,omitempty"`
	Web          string       `json:"web,omitempty"`
	Institution  *Institution `json:"institution,omitempty"` // relations=institution
}

type ResearchDepartment struct {
	ID       int32     `json:"id"`
	Name     string    `json:"name"`
	Web      string    `json:"web,omitempty"`
	Facility *Facility `json:"facility,omitempty"` // relations=facility or facility.institution
}

type Interest struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// ReferenceInput is the create/update payload shared by the reference-data resources.
// Parent ids are only sent for the resource that owns them.
type ReferenceInput struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Abbreviation  string `json:"abbreviation,omitempty"`
	Web           string `json:"web,omitempty"`
	InstitutionID *int32 `json:"institutionId,omitempty"`
	FacilityID    *int32 `json:"facilityId,omitempty"`
}
