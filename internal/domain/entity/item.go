package entity

// Item - простая запись списка дел, независимая от викторин.
// Secret хранится в базе, но никогда не попадает в ответы API.
type Item struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       *string `gorm:"type:text" json:"name"`
	IsComplete bool    `gorm:"not null;default:false" json:"is_complete"`
	Secret     *string `gorm:"type:text" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Item) TableName() string {
	return "backend_items"
}
