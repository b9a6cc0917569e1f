package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fotobot/internal/service/report"
	"fotobot/internal/storage"
	"fotobot/internal/transport"
)

const dateLayout = "2006-01-02"

// Команды главного меню
const (
	cmdStart       = "/start"
	menuReport     = "Team report 📋"
	menuAddWorker  = "Add worker ➕"
	menuAddPhotos  = "Add photos 📷"
	menuRename     = "Rename worker ✏️"
	menuDelete     = "Delete worker 🗑️"
	menuSendReport = "Report with send 📤"
)

type flowKind int

const (
	flowAddWorker flowKind = iota + 1
	flowAddCount
	flowRename
	flowDelete
	flowEditCount
	flowReport
)

type flowStep int

const (
	stepPickWorker flowStep = iota + 1
	stepName
	stepCount
	stepDate
	stepConfirm
)

type actionKind int

const (
	actionPickWorker actionKind = iota + 1
	actionSendReport
	actionCancelReport
	actionEditFromReport
)

type buttonAction struct {
	kind   actionKind
	worker string
}

// conversation — незавершённый сценарий одного пользователя: какой поток,
// какой шаг и что уже собрано. Кнопки привязаны к сценарию через токены,
// поэтому устаревшая кнопка после сброса сценария ничего не сделает.
type conversation struct {
	flow    flowKind
	step    flowStep
	worker  string
	date    string
	buttons map[string]buttonAction
}

type Store interface {
	LoadLedger() (*storage.Ledger, error)
	SaveLedger(ledger *storage.Ledger) error
}

type Engine struct {
	log         *slog.Logger
	store       Store
	reports     *report.ReportService
	send        transport.Sender
	access      *Access
	groupChatID int64
	now         func() time.Time

	// события одного пользователя не обрабатываются параллельно,
	// один мьютекс на всё — при нашем объёме этого достаточно
	mu     sync.Mutex
	states map[int64]*conversation
}

func NewEngine(log *slog.Logger, store Store, reports *report.ReportService, send transport.Sender, access *Access, groupChatID int64) *Engine {
	return &Engine{
		log:         log,
		store:       store,
		reports:     reports,
		send:        send,
		access:      access,
		groupChatID: groupChatID,
		now:         time.Now,
		states:      make(map[int64]*conversation),
	}
}

// HandleText — входная точка для текстовых сообщений.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Команды меню проверяются первыми: новая операция молча сбрасывает
	// незавершённый сценарий, текст команды никогда не уходит в шаг
	if isMenuCommand(text) {
		return e.handleMenu(ctx, userID, text)
	}

	if st, ok := e.states[userID]; ok {
		return e.handleStep(ctx, userID, st, text)
	}

	// свободный текст вне сценария игнорируем, как и исходный бот
	return nil
}

// HandleButton — входная точка для нажатий кнопок.
func (e *Engine) HandleButton(ctx context.Context, userID int64, token string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.states[userID]
	if !ok {
		return e.sendPlain(ctx, userID, "This button is no longer active.")
	}
	act, ok := st.buttons[token]
	if !ok {
		return e.sendPlain(ctx, userID, "This button is no longer active.")
	}

	switch act.kind {
	case actionPickWorker:
		return e.workerPicked(ctx, userID, st, act.worker)
	case actionSendReport:
		return e.confirmSend(ctx, userID)
	case actionCancelReport:
		delete(e.states, userID)
		return e.sendPlain(ctx, userID, "Sending cancelled.")
	case actionEditFromReport:
		// единственный переход между сценариями: из предпросмотра отчёта
		// сразу в выбор сотрудника для правки
		return e.startEditCount(ctx, userID)
	}
	return nil
}

func isMenuCommand(text string) bool {
	switch text {
	case cmdStart, menuReport, menuAddWorker, menuAddPhotos, menuRename, menuDelete, menuSendReport:
		return true
	}
	return false
}

func (e *Engine) handleMenu(ctx context.Context, userID int64, text string) error {
	// новая команда всегда затирает незавершённый сценарий
	delete(e.states, userID)

	switch text {
	case cmdStart:
		return e.sendPlain(ctx, userID, e.menuText(userID))

	case menuReport:
		summary, err := e.reports.Summary(transport.MarkupMarkdown)
		if err != nil {
			return e.failStorage(ctx, userID, err)
		}
		return e.send.SendText(ctx, userID, summary, transport.SendOptions{Markup: transport.MarkupMarkdown})

	case menuAddWorker:
		if !e.access.IsOperator(userID) {
			return e.sendPlain(ctx, userID, "You don't have permission to do that.")
		}
		e.states[userID] = &conversation{flow: flowAddWorker, step: stepName}
		return e.sendPlain(ctx, userID, "Enter the new worker's name:")

	case menuAddPhotos:
		return e.startWorkerPick(ctx, userID, flowAddCount, "Choose a worker:")

	case menuRename:
		return e.startWorkerPick(ctx, userID, flowRename, "Choose a worker to rename:")

	case menuDelete:
		return e.startWorkerPick(ctx, userID, flowDelete, "Choose a worker to delete:")

	case menuSendReport:
		if !e.access.IsOperator(userID) {
			return e.sendPlain(ctx, userID, "You don't have permission to do that.")
		}
		summary, err := e.reports.Summary(transport.MarkupMarkdown)
		if err != nil {
			return e.failStorage(ctx, userID, err)
		}

		st := &conversation{flow: flowReport, step: stepConfirm, buttons: map[string]buttonAction{}}
		choices := []transport.Choice{
			st.addButton("Send report", buttonAction{kind: actionSendReport}),
			st.addButton("Edit", buttonAction{kind: actionEditFromReport}),
			st.addButton("Cancel", buttonAction{kind: actionCancelReport}),
		}
		e.states[userID] = st
		// предпросмотр ничего не пишет в журнал отправок
		if err := e.send.SendText(ctx, userID, summary, transport.SendOptions{Markup: transport.MarkupMarkdown}); err != nil {
			return err
		}
		return e.send.SendChoices(ctx, userID, "Send this report to the group?", choices)
	}
	return nil
}

// startWorkerPick начинает сценарий с шага выбора сотрудника кнопками.
// Выбор кнопками, а не текстом — чтобы не ловить опечатки в именах.
func (e *Engine) startWorkerPick(ctx context.Context, userID int64, flow flowKind, prompt string) error {
	if !e.access.IsOperator(userID) {
		return e.sendPlain(ctx, userID, "You don't have permission to do that.")
	}

	ledger, err := e.store.LoadLedger()
	if err != nil {
		return e.failStorage(ctx, userID, err)
	}
	if ledger.Empty() {
		return e.sendPlain(ctx, userID, "No workers yet, add one first.")
	}

	st := &conversation{flow: flow, step: stepPickWorker, buttons: map[string]buttonAction{}}
	var choices []transport.Choice
	for _, name := range ledger.Names() {
		choices = append(choices, st.addButton(name, buttonAction{kind: actionPickWorker, worker: name}))
	}
	e.states[userID] = st
	return e.send.SendChoices(ctx, userID, prompt, choices)
}

// startEditCount — вход в правку отчёта из предпросмотра.
func (e *Engine) startEditCount(ctx context.Context, userID int64) error {
	delete(e.states, userID)

	ledger, err := e.store.LoadLedger()
	if err != nil {
		return e.failStorage(ctx, userID, err)
	}
	if ledger.Empty() {
		return e.sendPlain(ctx, userID, "No data to edit.")
	}

	st := &conversation{flow: flowEditCount, step: stepPickWorker, buttons: map[string]buttonAction{}}
	var choices []transport.Choice
	for _, name := range ledger.Names() {
		choices = append(choices, st.addButton(name, buttonAction{kind: actionPickWorker, worker: name}))
	}
	e.states[userID] = st
	return e.send.SendChoices(ctx, userID, "Choose a worker to edit:", choices)
}

func (st *conversation) addButton(label string, act buttonAction) transport.Choice {
	token := uuid.NewString()
	st.buttons[token] = act
	return transport.Choice{Label: label, Token: token}
}

func (e *Engine) menuText(userID int64) string {
	lines := []string{
		"Hi! This bot tracks daily photo counts per worker.",
		"Commands:",
		menuReport,
	}
	if e.access.IsOperator(userID) {
		lines = append(lines,
			menuAddWorker,
			menuAddPhotos,
			menuRename,
			menuDelete,
			menuSendReport,
		)
	}
	return strings.Join(lines, "\n")
}

func (e *Engine) sendPlain(ctx context.Context, userID int64, text string) error {
	return e.send.SendText(ctx, userID, text, transport.SendOptions{Markup: transport.MarkupPlain})
}

// failStorage: ошибка хранилища фатальна для текущей операции, но не для
// процесса. Пользователю — общий ответ, подробности в лог.
func (e *Engine) failStorage(ctx context.Context, userID int64, err error) error {
	e.log.With(slog.String("error", err.Error())).Error("ошибка хранилища")
	delete(e.states, userID)
	return e.sendPlain(ctx, userID, "Something went wrong, try again later.")
}

func (e *Engine) today() string {
	return e.now().Format(dateLayout)
}

// WithClock подменяет источник времени (для тестов).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}
