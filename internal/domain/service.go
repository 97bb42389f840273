package domain

// Category категория услуг. Услуга может принадлежать одной категории или ни одной
type Category struct {
	ID   int64
	Name string // уникально
}

// Service услуга барбершопа
type Service struct {
	ID         int64
	CategoryID *int64 // nil = без категории
	Name       string
	Price      int // в рублях
	// DurationMinutes длительность услуги. Информационное поле:
	// сетка слотов фиксированная и от длительности не зависит
	DurationMinutes int
}
