package bulk_update_reservations

// Request модель запроса на пакетную смену статуса
type Request struct {
	PrimaryID     int64   // Обрабатывается первым
	AdditionalIDs []int64 // Обрабатываются по порядку после основного
	StateID       int64   // Целевой статус для всех бронирований
}

// IDs возвращает идентификаторы в порядке обработки без повторов
func (r *Request) IDs() []int64 {
	seen := make(map[int64]struct{}, len(r.AdditionalIDs)+1)
	ids := make([]int64, 0, len(r.AdditionalIDs)+1)

	for _, id := range append([]int64{r.PrimaryID}, r.AdditionalIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}
