package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category - lĩnh vực của ý tưởng kinh doanh
type Category string

const (
	CategoryTech           Category = "tech"
	CategoryHealthcare     Category = "healthcare"
	CategoryFinance        Category = "finance"
	CategoryEducation      Category = "education"
	CategoryRetail         Category = "retail"
	CategoryFood           Category = "food"
	CategorySustainability Category = "sustainability"
	CategoryOther          Category = "other"
)

// Categories theo thứ tự hiển thị
var Categories = []Category{
	CategoryTech,
	CategoryHealthcare,
	CategoryFinance,
	CategoryEducation,
	CategoryRetail,
	CategoryFood,
	CategorySustainability,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status - vòng đời của post: draft -> published -> archived
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Scope chọn tập post được list
type Scope string

const (
	ScopePublic Scope = "public" // published, mọi author
	ScopeMine   Scope = "mine"   // của caller, mọi status
)

// Post là domain entity - ánh xạ 1:1 với bảng posts
type Post struct {
	ID            int64
	Title         string
	Description   string
	Category      Category
	TargetMarket  *string
	BusinessModel *string
	FundingNeeds  *decimal.Decimal
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AuthorID      int64
}

// NewDraft tạo post mới thuộc về author, luôn ở trạng thái draft
func NewDraft(authorID int64, now time.Time) *Post {
	return &Post{
		Category:  CategoryOther,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
		AuthorID:  authorID,
	}
}

func (p *Post) IsAuthor(userID int64) bool {
	return p.AuthorID == userID
}

func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// VisibleTo: author thấy mọi status, người khác chỉ thấy published
func (p *Post) VisibleTo(userID int64) bool {
	return p.IsAuthor(userID) || p.IsPublished()
}

// Publish chuyển sang published, gọi lại trên post đã published chỉ refresh UpdatedAt
func (p *Post) Publish(now time.Time) {
	p.Status = StatusPublished
	p.Touch(now)
}

// Archive trả về false nếu post đã archived (no-op)
func (p *Post) Archive(now time.Time) bool {
	if p.Status == StatusArchived {
		return false
	}
	p.Status = StatusArchived
	p.Touch(now)
	return true
}

// Touch refresh UpdatedAt, không bao giờ lùi về trước CreatedAt
func (p *Post) Touch(now time.Time) {
	if now.Before(p.CreatedAt) {
		now = p.CreatedAt
	}
	p.UpdatedAt = now
}
