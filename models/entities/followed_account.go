package entities

type FollowedAccount struct {
	ChatID      int64  `json:"chatId" gorm:"primaryKey;autoIncrement:false"`
	Handle      string `json:"handle" gorm:"primaryKey"`
	WatermarkID int64  `json:"watermarkId"`
}
