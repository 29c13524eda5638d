package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/usecase/fetch_booked_slots"
	"github.com/m04kA/SMC-CourtBooking/internal/usecase/submit_booking"
)

// Board состояние экрана бронирования: площадка, дата, снимок занятых слотов и выбор пользователя.
// Методы можно вызывать из разных горутин (например, Refresh по таймеру и Toggle из ввода).
// Сетевые вызовы выполняются без удержания мьютекса, поэтому ответы Refresh могут прийти не по порядку
type Board struct {
	resolver     AvailabilityResolver
	submitter    BookingSubmitter
	session      SessionProvider
	timeProvider TimeProvider
	logger       Logger
	loc          *time.Location

	mu         sync.Mutex
	field      domain.FieldType
	date       time.Time
	booked     domain.BookedSlotSet
	selection  *domain.SelectionSet
	degraded   bool
	submitting bool
}

// SubmitResult итог успешной отправки
type SubmitResult struct {
	Booked  []submit_booking.BookedSlot
	Message string
}

// New создает доску для площадки field. Даты приводятся к часовому поясу loc
func New(
	resolver AvailabilityResolver,
	submitter BookingSubmitter,
	session SessionProvider,
	field domain.FieldType,
	loc *time.Location,
	logger Logger,
) *Board {
	if loc == nil {
		loc = time.Local
	}
	return &Board{
		resolver:     resolver,
		submitter:    submitter,
		session:      session,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		loc:          loc,
		field:        field,
		booked:       domain.NewBookedSlotSet(),
		selection:    domain.NewSelectionSet(),
	}
}

// ChangeDate выбирает дату. Выходные и прошедшие даты отклоняются до сетевых вызовов
func (b *Board) ChangeDate(ctx context.Context, date time.Time) error {
	date = b.dayOf(date)

	if domain.IsWeekend(date) {
		return ErrWeekend
	}
	if domain.IsDateInPast(date, b.timeProvider.Now()) {
		return ErrDateInPast
	}

	b.mu.Lock()
	b.date = date
	b.selection.Clear()
	b.mu.Unlock()

	return b.Refresh(ctx)
}

// ChangeField выбирает площадку и сбрасывает выбор
func (b *Board) ChangeField(ctx context.Context, field domain.FieldType) error {
	if !field.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFieldType, field)
	}

	b.mu.Lock()
	b.field = field
	b.selection.Clear()
	b.mu.Unlock()

	return b.Refresh(ctx)
}

// Refresh заново запрашивает занятые слоты для текущих площадки и даты.
// Устаревшие ответы и ответы без сессии не меняют снимок. Номер запроса сверяется
// под мьютексом: ответ, обогнанный более новым Refresh, отбрасывается
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	field, date := b.field, b.date
	b.mu.Unlock()

	if date.IsZero() {
		return nil
	}

	resp, err := b.resolver.Execute(ctx, &fetch_booked_slots.Request{
		Auth:      b.session.Current(),
		FieldType: field,
		Date:      date,
	})
	if err != nil {
		return fmt.Errorf("failed to refresh booked slots: %w", err)
	}

	if resp.Skipped {
		b.logger.Warn("Board: no session, booked slots not refreshed")
		return nil
	}
	if resp.Stale {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// пока шел запрос, мог завершиться более новый Refresh
	if !b.resolver.IsLatest(resp.Sequence) {
		b.logger.Info("Board: dropping response seq=%d, a newer refresh was issued", resp.Sequence)
		return nil
	}

	// пока шел запрос, пользователь мог сменить площадку или дату
	if b.field != resp.FieldType || !b.date.Equal(resp.Date) {
		return nil
	}

	b.booked = resp.Booked
	if b.booked == nil {
		b.booked = domain.NewBookedSlotSet()
	}
	b.degraded = resp.Degraded

	return nil
}

// Toggle добавляет или убирает слот из выбора. Прошедшие и занятые слоты не переключаются
func (b *Board) Toggle(slot domain.Slot) (bool, error) {
	if !domain.IsCatalogSlot(slot) {
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidSlot, slot)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.date.IsZero() {
		return false, ErrNoDate
	}

	state := domain.ClassifySlot(slot, b.booked, b.selection, b.date, b.timeProvider.Now())
	if !state.Togglable() {
		return false, fmt.Errorf("%w: %s is %s", ErrSlotNotTogglable, slot, state)
	}

	return b.selection.Toggle(slot), nil
}

// Grid классифицирует каталог на текущий момент
func (b *Board) Grid() []domain.SlotView {
	b.mu.Lock()
	defer b.mu.Unlock()

	return domain.ClassifyGrid(b.booked, b.selection, b.date, b.timeProvider.Now())
}

// Submit отправляет выбранные слоты. При успехе выбор очищается, снимок обновляется один раз.
// При ошибке выбор сохраняется
func (b *Board) Submit(ctx context.Context) (*SubmitResult, error) {
	b.mu.Lock()
	if b.submitting {
		b.mu.Unlock()
		return nil, ErrBusy
	}
	b.submitting = true
	req := &submit_booking.Request{
		Auth:      b.session.Current(),
		FieldType: b.field,
		Date:      b.date,
		Slots:     b.selection.Labels(),
	}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.submitting = false
		b.mu.Unlock()
	}()

	resp, err := b.submitter.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.selection.Clear()
	b.mu.Unlock()

	if err := b.Refresh(ctx); err != nil {
		b.logger.Error("Board: refresh after submit failed: %v", err)
	}

	return &SubmitResult{
		Booked:  resp.Booked,
		Message: fmt.Sprintf("%d slots booked", resp.Count()),
	}, nil
}

// Selection выбранные слоты в порядке выбора
func (b *Board) Selection() []domain.Slot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selection.Labels()
}

func (b *Board) Field() domain.FieldType {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.field
}

// Date выбранная дата; нулевое значение, если дата не выбрана
func (b *Board) Date() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.date
}

// Degraded returns true if the last snapshot was replaced by an empty set after a fetch failure
func (b *Board) Degraded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.degraded
}

func (b *Board) dayOf(t time.Time) time.Time {
	t = t.In(b.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, b.loc)
}
