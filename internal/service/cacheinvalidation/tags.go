package cacheinvalidation

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Mutation измерения кэша, затронутые изменением
type Mutation = domain.Mutation

// TagSet упорядоченный набор тегов без повторов
type TagSet []string

// Contains проверяет наличие тега в наборе
func (s TagSet) Contains(tag string) bool {
	i := sort.SearchStrings(s, tag)
	return i < len(s) && s[i] == tag
}

// ScenarioReservationsTag тег списка бронирований подсценария
func ScenarioReservationsTag(subScenarioID int64) string {
	return fmt.Sprintf("scenario-%d-reservations", subScenarioID)
}

// TimeSlotsTag тег всех слотов подсценария
func TimeSlotsTag(subScenarioID int64) string {
	return fmt.Sprintf("timeslots-%d", subScenarioID)
}

// TimeSlotsDateTag тег слотов подсценария на конкретную дату
func TimeSlotsDateTag(subScenarioID int64, date types.Date) string {
	return fmt.Sprintf("timeslots-%d-%s", subScenarioID, date)
}

// UserReservationsTag тег списка бронирований пользователя.
// userID = 0 соответствует агрегированному представлению всех пользователей.
func UserReservationsTag(userID int64) string {
	return fmt.Sprintf("user-%d-reservations", userID)
}

// TagsFor вычисляет набор тегов для мутации. Результат детерминирован и
// не зависит от порядка дат.
func TagsFor(m Mutation) TagSet {
	tags := map[string]struct{}{
		domain.TagReservations: {},
		domain.TagTimeSlots:    {},
	}

	if m.SubScenarioID != nil {
		id := *m.SubScenarioID
		tags[ScenarioReservationsTag(id)] = struct{}{}
		tags[TimeSlotsTag(id)] = struct{}{}
		for _, date := range m.DateKeys {
			tags[TimeSlotsDateTag(id, date)] = struct{}{}
		}
	}

	if m.UserID != nil {
		tags[UserReservationsTag(*m.UserID)] = struct{}{}
	}

	// Агрегированное представление видит изменения любого пользователя
	if m.UserID != nil || m.Dashboard {
		tags[UserReservationsTag(domain.DashboardUserID)] = struct{}{}
	}

	return toTagSet(tags)
}

// Merge объединяет теги нескольких мутаций
func Merge(mutations ...Mutation) TagSet {
	tags := make(map[string]struct{})
	for _, m := range mutations {
		for _, tag := range TagsFor(m) {
			tags[tag] = struct{}{}
		}
	}
	if len(tags) == 0 {
		return TagsFor(Mutation{})
	}
	return toTagSet(tags)
}

func toTagSet(tags map[string]struct{}) TagSet {
	result := make(TagSet, 0, len(tags))
	for tag := range tags {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}
