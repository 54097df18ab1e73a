package domain

// Field length limits enforced before any movie row is persisted. Year is a
// free-form string ("2021", "90s") capped at four characters.
const (
	TitleMaxLen = 60
	YearMaxLen  = 4
)

// Movie is a single watchlist entry. Movies have no ownership relation to
// users; the catalog is shared.
type Movie struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"size:60;not null"`
	Year  string `gorm:"size:4;not null"`
}
