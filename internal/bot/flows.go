package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fotobot/internal/storage"
	"fotobot/internal/transport"
)

// handleStep ведёт незавершённый сценарий дальше по свободному тексту.
// Неподходящий ввод переспрашивает тот же шаг, собранное не теряется.
func (e *Engine) handleStep(ctx context.Context, userID int64, st *conversation, text string) error {
	switch {
	case st.flow == flowAddWorker && st.step == stepName:
		return e.finishAddWorker(ctx, userID, text)

	case st.flow == flowRename && st.step == stepName:
		return e.finishRename(ctx, userID, st, text)

	case st.flow == flowAddCount && st.step == stepCount:
		return e.finishAddCount(ctx, userID, st, text)

	case st.flow == flowEditCount && st.step == stepDate:
		return e.editCountDate(ctx, userID, st, text)

	case st.flow == flowEditCount && st.step == stepCount:
		return e.finishEditCount(ctx, userID, st, text)
	}

	// шаг ждёт кнопку, а не текст — молчим, сценарий остаётся как был
	return nil
}

// workerPicked — сотрудник выбран кнопкой, двигаем сценарий на следующий шаг.
func (e *Engine) workerPicked(ctx context.Context, userID int64, st *conversation, worker string) error {
	switch st.flow {
	case flowAddCount:
		st.worker = worker
		st.step = stepCount
		st.buttons = nil
		return e.sendPlain(ctx, userID, fmt.Sprintf("Enter the photo count for %s for today:", worker))

	case flowRename:
		st.worker = worker
		st.step = stepName
		st.buttons = nil
		return e.sendPlain(ctx, userID, fmt.Sprintf("Enter the new name for %s:", worker))

	case flowDelete:
		// у удаления нет следующего шага
		return e.finishDelete(ctx, userID, worker)

	case flowEditCount:
		st.worker = worker
		st.step = stepDate
		st.buttons = nil
		return e.sendPlain(ctx, userID, fmt.Sprintf("Enter the date to edit for %s (YYYY-MM-DD), e.g. 2025-08-03:", worker))
	}
	return nil
}

func (e *Engine) finishAddWorker(ctx context.Context, userID int64, text string) error {
	name := strings.TrimSpace(text)
	if name == "" {
		return e.sendPlain(ctx, userID, "Name cannot be empty.")
	}

	ledger, err := e.store.LoadLedger()
	if err != nil {
		return e.failStorage(ctx, userID, err)
	}

	if err := ledger.AddWorker(name); err != nil {
		delete(e.states, userID)
		return e.sendPlain(ctx, userID, "That worker already exists.")
	}
	if err := e.store.SaveLedger(ledger); err != nil {
		return e.failStorage(ctx, userID, err)
	}

	delete(e.states, userID)
	return e.sendPlain(ctx, userID, fmt.Sprintf("Worker '%s' added.", name))
}

func (e *Engine) finishRename(ctx context.Context, userID int64, st *conversation, text string) error {
	newName := strings.TrimSpace(text)
	if newName == "" {
		return e.sendPlain(ctx, userID, "Name cannot be empty.")
	}

	ledger, err := e.store.LoadLedger()
	if err != nil {
		return e.failStorage(ctx, userID, err)
	}

	if err := ledger.Rename(st.worker, newName); err != nil {
		delete(e.states, userID)
		if errors.Is(err, storage.ErrWorkerExists) {
			return e.sendPlain(ctx, userID, "That name is already taken.")
		}
		// сотрудника успели удалить, пока шёл сценарий
		return e.sendPlain(ctx, userID, "Worker not found.")
	}
	if err := e.store.SaveLedger(ledger); err != nil {
		return e.failStorage(ctx, userID, err)
	}

	delete(e.states, userID)
	return e.sendPlain(ctx, userID, fmt.Sprintf("Worker '%s' renamed to '%s'.", st.worker, newName))
}

func (e *Engine) finishAddCount(ctx context.Context, userID int64, st *conversation, text string) error {
	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || count < 0 {
		return e.sendPlain(ctx, userID, "Enter a valid number.")
	}

	ledger, err := e.store.LoadLedger()
	if err != nil {
		return e.failStorage(ctx, userID, err)
	}

	today := e.today()
	if err := ledger.AddCount(st.worker, today, count); err != nil {
		delete(e.states, userID)
		return e.sendPlain(ctx, userID, "Worker not found.")
	}
	if err := e.store.SaveLedger(ledger); err != nil {
		return e.failStorage(ctx, userID, err)
	}

	delete(e.states, userID)
	return e.sendPlain(ctx, userID, fmt.Sprintf("Added %d photos for %s on %s.", count, st.worker, today))
}

func (e *Engine) finishDelete(ctx context.Context, userID int64, worker string) error {
	ledger, err := e.store.LoadLedger()
	if err != nil {
		return e.failStorage(ctx, userID, err)
	}

	if err := ledger.Delete(worker); err != nil {
		delete(e.states, userID)
		return e.sendPlain(ctx, userID, "Worker not found.")
	}
	if err := e.store.SaveLedger(ledger); err != nil {
		return e.failStorage(ctx, userID, err)
	}

	delete(e.states, userID)
	return e.sendPlain(ctx, userID, fmt.Sprintf("Worker '%s' deleted.", worker))
}

func (e *Engine) editCountDate(ctx context.Context, userID int64, st *conversation, text string) error {
	date := strings.TrimSpace(text)
	parsed, err := time.Parse(dateLayout, date)
	// time.Parse прощает "2025-1-1", сверяем с каноничной записью
	if err != nil || parsed.Format(dateLayout) != date {
		return e.sendPlain(ctx, userID, "Invalid date format. Try again.")
	}

	st.date = date
	st.step = stepCount
	return e.sendPlain(ctx, userID, "Enter the new photo count for this date:")
}

func (e *Engine) finishEditCount(ctx context.Context, userID int64, st *conversation, text string) error {
	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || count < 0 {
		return e.sendPlain(ctx, userID, "Enter a valid number.")
	}

	ledger, err := e.store.LoadLedger()
	if err != nil {
		return e.failStorage(ctx, userID, err)
	}

	// правка перезаписывает значение, в отличие от добавления фото
	if err := ledger.SetCount(st.worker, st.date, count); err != nil {
		delete(e.states, userID)
		return e.sendPlain(ctx, userID, "Worker not found.")
	}
	if err := e.store.SaveLedger(ledger); err != nil {
		return e.failStorage(ctx, userID, err)
	}

	delete(e.states, userID)
	return e.sendPlain(ctx, userID, fmt.Sprintf("Count for %s on %s set to %d.", st.worker, st.date, count))
}

// confirmSend — подтверждённая отправка отчёта в группу. Сначала запись в
// журнал, потом отправка.
func (e *Engine) confirmSend(ctx context.Context, userID int64) error {
	summary, err := e.reports.Summary(transport.MarkupMarkdown)
	if err != nil {
		return e.failStorage(ctx, userID, err)
	}

	if err := e.reports.RecordDispatch(summary); err != nil {
		return e.failStorage(ctx, userID, err)
	}
	if err := e.send.SendToChannel(ctx, e.groupChatID, summary); err != nil {
		e.log.With(slog.String("error", err.Error())).Error("не удалось отправить отчёт в группу")
		delete(e.states, userID)
		return e.sendPlain(ctx, userID, "Failed to send the report, try again later.")
	}

	delete(e.states, userID)
	return e.sendPlain(ctx, userID, "Report sent!")
}
