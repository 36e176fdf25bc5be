package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - это ключ, по которому мы храним *gorm.DB в context
// (пул соединений или открытую транзакцию в тестах)
const DBContextKey = contextKey("db")
