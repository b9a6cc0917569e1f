package storage

// DispatchRecord — запись журнала отправок: когда и какой текст ушёл в группу.
// Пишется только при фактической отправке, предпросмотр в журнал не попадает.
type DispatchRecord struct {
	Timestamp string `json:"timestamp"`
	Report    string `json:"report"`
}
