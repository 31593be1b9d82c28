package domain

import (
	"net/url"
	"strconv"
	"strings"
)

type ProjectSummary struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID                 int32               `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"` // HTML
	StartDate          string              `json:"startDate"`
	EndDate            *string             `json:"endDate,omitempty"`
	IsDown             bool                `json:"isDown"`
	FavoriteCount      int32               `json:"favoriteCount"`
	IsFavorite         bool                `json:"isFavorite"`
	Institution        *Institution        `json:"institution,omitempty"`
	Facility           *Facility           `json:"facility,omitempty"`
	ResearchDepartment *ResearchDepartment `json:"researchDepartment,omitempty"`
	Interests          []Interest          `json:"interests,omitempty"`
	Enrollments        []Enrollment        `json:"enrollments,omitempty"`
	MyRequest          *EnrollmentRecord   `json:"requestState,omitempty"` // Current user's request or invitation
}

// RoleOf returns the membership role of userID, or "" when not a member.
func (p *Project) RoleOf(userID int32) EnrollmentRole {
	if p == nil {
		return ""
	}
	for _, e := range p.Enrollments {
		if e.User != nil && e.User.ID == userID {
			return e.Role
		}
	}
	return ""
}

type ProjectInput struct {
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	StartDate            string  `json:"startDate"`
	EndDate              *string `json:"endDate,omitempty"`
	IsDown               bool    `json:"isDown"`
	InstitutionID        *int32  `json:"institutionId,omitempty"`
	FacilityID           *int32  `json:"facilityId,omitempty"`
	ResearchDepartmentID *int32  `json:"researchDepartmentId,omitempty"`
	InterestIDs          []int32 `json:"interestIds"`
}

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ProjectQuery holds the search, filter, sort and pagination parameters of GET /projects
type ProjectQuery struct {
	Search               string
	InstitutionID        int32
	FacilityID           int32
	ResearchDepartmentID int32
	InterestIDs          []int32
	DateFrom             string
	DateTo               string
	SortBy               string
	Order                SortDirection
	Limit                int32
	Offset               int32
}

// Values encodes the query as backend query parameters. Zero values are omitted.
func (q ProjectQuery) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("q", s)
	}
	setID := func(key string, id int32) {
		if id > 0 {
			v.Set(key, strconv.Itoa(int(id)))
		}
	}
	setID("institutionId", q.InstitutionID)
	setID("facilityId", q.FacilityID)
	setID("researchDepartmentId", q.ResearchDepartmentID)
	if len(q.InterestIDs) > 0 {
		ids := make([]string, 0, len(q.InterestIDs))
		for _, id := range q.InterestIDs {
			ids = append(ids, strconv.Itoa(int(id)))
		}
		v.Set("interestIds", strings.Join(ids, ","))
	}
	if q.DateFrom != "" {
		v.Set("dateFrom", q.DateFrom)
	}
	if q.DateTo != "" {
		v.Set("dateTo", q.DateTo)
	}
	if q.SortBy != "" {
		v.Set("sort", q.SortBy)
		order := q.Order
		if order != SortAsc {
			order = SortDesc
		}
		v.Set("order", string(order))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(int(q.Limit)))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(int(q.Offset)))
	}
	return v
}

type ProjectPage struct {
	Projects []Project `json:"projects"`
	Total    int32     `json:"count"`
}
