package models

// Test представляет сущность каталога Test.
// Имя сущности на проводе передается в поле "test".
type Test struct {
	ID        int64     `json:"id"`
	Name      string    `json:"test"`
	Images    ImageList `json:"image"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

// TestChild представляет дочернюю сущность каталога, привязанную к Test.
// Поле Test — денормализованный join; присутствует только если API его включил.
type TestChild struct {
	ID        int64     `json:"id"`
	Name      string    `json:"testChild"`
	Images    ImageList `json:"image"`
	TestID    int64     `json:"testId"`
	Test      *Test     `json:"test,omitempty"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

// Envelope — стандартный конверт ответов каталожного API для операций чтения.
type Envelope[T any] struct {
	Status bool `json:"status"`
	Data   T    `json:"data"`
}
