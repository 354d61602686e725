package model

import "time"

// Post is a blog entry. IsActive controls listing visibility only; deletes
// are hard and cascade through comments and reactions.
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Excerpt   string    `gorm:"type:text" json:"excerpt"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Quotes    string    `gorm:"type:varchar(255)" json:"quotes,omitempty"`
	Photo     string    `gorm:"type:varchar(255)" json:"photo,omitempty"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Date      time.Time `gorm:"index:idx_post_date;not null" json:"date"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
