// Package pgqry composes the dashboard filters onto bun select queries. Every user
// supplied value is passed as a query argument, never spliced into the SQL text.
package pgqry

import (
	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/constant"
)

const StudentAlias = "s"

var deviceColumns = map[string]string{
	constant.DevicePhone:  "uses_phone",
	constant.DeviceLaptop: "uses_laptop",
	constant.DeviceTablet: "uses_tablet",
}

type pq struct {
	Q     *bun.SelectQuery
	alias string

	joinedStudents bool
}

// New wraps a query over a table aliased as alias.
func New(bunQuery *bun.SelectQuery, alias string) *pq {
	return &pq{Q: bunQuery, alias: alias, joinedStudents: alias == StudentAlias}
}

func (pq *pq) col(name string) string {
	return pq.alias + "." + name
}

// UseStudentById joins students on the respondent id, once.
func (pq *pq) UseStudentById() *pq {
	if pq.joinedStudents {
		return pq
	}
	pq.Q = pq.Q.Join("JOIN students AS s ON s.id = " + pq.col("id"))
	pq.joinedStudents = true
	return pq
}

// DoFilterDaysAttended keeps rows whose days_attended mentions any of days.
func (pq *pq) DoFilterDaysAttended(days []string) *pq {
	if len(days) == 0 {
		return pq
	}
	col := pq.col("days_attended")
	pq.Q = pq.Q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, day := range days {
			q = q.WhereOr("? ILIKE ?", bun.Ident(col), "%"+day+"%")
		}
		return q
	})
	return pq
}

// DoFilterFaculties keeps rows of respondents in any of faculties.
func (pq *pq) DoFilterFaculties(faculties []string) *pq {
	if len(faculties) == 0 {
		return pq
	}
	pq.UseStudentById()
	pq.Q = pq.Q.Where("s.faculty IN (?)", bun.In(faculties))
	return pq
}

func (pq *pq) DoFilterModes(modes []string) *pq {
	if len(modes) == 0 {
		return pq
	}
	pq.Q = pq.Q.Where("? IN (?)", bun.Ident(pq.col("mode")), bun.In(modes))
	return pq
}

// DoFilterDevices keeps rows using any of devices. Unknown devices are ignored.
func (pq *pq) DoFilterDevices(devices []string) *pq {
	cols := make([]string, 0, len(devices))
	for _, d := range devices {
		if c, ok := deviceColumns[d]; ok {
			cols = append(cols, pq.col(c))
		}
	}
	if len(cols) == 0 {
		return pq
	}
	pq.Q = pq.Q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, c := range cols {
			q = q.WhereOr("? = TRUE", bun.Ident(c))
		}
		return q
	})
	return pq
}

// DoFilterActivityDays keeps activity rows logged on any of days.
func (pq *pq) DoFilterActivityDays(days []string) *pq {
	if len(days) == 0 {
		return pq
	}
	pq.Q = pq.Q.Where("? IN (?)", bun.Ident(pq.col("day")), bun.In(days))
	return pq
}

// DoFilterActivityCategories keeps facility intensive and/or food waste producing activities.
func (pq *pq) DoFilterActivityCategories(categories []string) *pq {
	var facility, food bool
	for _, c := range categories {
		facility = facility || c == constant.ActivityCategoryFacility
		food = food || c == constant.ActivityCategoryFood
	}
	if !facility && !food {
		return pq
	}
	pq.Q = pq.Q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		if facility {
			q = q.WhereOr("? = TRUE", bun.Ident(pq.col("is_facility_intensive")))
		}
		if food {
			q = q.WhereOr("? > 0", bun.Ident(pq.col("food_waste_emission")))
		}
		return q
	})
	return pq
}
