package model

import "fmt"

// Project - bản ghi dự án của một user (owner)
type Project struct {
	ID          int64
	OwnerID     int64
	Name        string
	Type        string
	Description string
	URL         string
}

func (p *Project) IsOwner(userID int64) bool {
	return p.OwnerID == userID
}

func (p *Project) String() string {
	return fmt.Sprintf("Project %d: %s", p.ID, p.Type)
}

// TeamMember - một dòng của project_team, cặp (ProjectID, UserID) là duy nhất
type TeamMember struct {
	ID        int64
	ProjectID int64
	UserID    int64
	Role      *string
}
