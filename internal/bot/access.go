package bot

// Access — статический список операторов. Только они могут менять данные
// и отправлять отчёт в группу.
type Access struct {
	operators map[int64]struct{}
}

func NewAccess(ids []int64) *Access {
	operators := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		operators[id] = struct{}{}
	}
	return &Access{operators: operators}
}

func (a *Access) IsOperator(userID int64) bool {
	_, ok := a.operators[userID]
	return ok
}
