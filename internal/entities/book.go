package entities

// CreatedAtLayout is the timestamp format used for the books table.
// Local time, second precision, matching the text column in existing
// database files.
const CreatedAtLayout = "2006-01-02T15:04:05"

// Book is a single entry in the reading log.
//
// ReadOn and CreatedAt are stored as ISO-8601 text. Rating is declared
// INTEGER but read back as text: database files imported from earlier
// versions of the log may carry non-numeric values in that column, and the
// filter engine is deliberately lenient about them.
type Book struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Title     string  `gorm:"size:512" json:"title"`
	Author    *string `gorm:"size:256" json:"author,omitempty"`
	ReadOn    string  `gorm:"size:32" json:"read_on,omitempty"`
	Rating    string  `gorm:"type:integer" json:"rating,omitempty"`
	CreatedAt string  `gorm:"size:32" json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}

// AuthorName returns the author or the empty string when absent.
func (b Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return *b.Author
}
