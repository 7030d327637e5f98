package availability

// Ключи кеша доступности
// Кеш обслуживает только чтение: запись бронирования всегда идет мимо кеша
const (
	// Дневное представление: availability:day:{YYYY-MM-DD}:{durationMinutes}
	keyDay = "availability:day:%s:%d"

	// Месячное представление: availability:month:{YYYY}-{MM}:{durationMinutes}
	keyMonth = "availability:month:%04d-%02d:%d"

	// Шаблоны для инвалидации всех длительностей сразу
	patternDay   = "availability:day:%s:*"
	patternMonth = "availability:month:%04d-%02d:*"

	// Шаблон полного сброса (смена рабочих часов или гранулярности)
	patternAll = "availability:*"
)
