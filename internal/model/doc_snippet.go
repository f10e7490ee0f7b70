package model

// DocSnippet is an indexed chunk of certification documentation with its
// embedding vector, used by the chat assistant's retrieval step.
type DocSnippet struct {
	BaseModel
	Specialization string    `gorm:"size:50;index" json:"specialization"`
	Title          string    `gorm:"size:255" json:"title"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	URL            string    `gorm:"size:500" json:"url"`
	Embedding      FloatList `gorm:"type:text" json:"-"`
}

func (DocSnippet) TableName() string {
	return "doc_snippets"
}
