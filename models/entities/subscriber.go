package entities

type Subscriber struct {
	ChatID         int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name           string `json:"name,omitempty"`
	IncludeReplies bool   `json:"includeReplies"`
	Active         bool   `json:"active"`
}
