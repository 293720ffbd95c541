package dialog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardomaia/agendador/internal/database"
	"github.com/ricardomaia/agendador/internal/gcal"
	"github.com/ricardomaia/agendador/internal/nlp"
)

// A Tuesday morning, so "amanhã" is 2024-04-10.
var testNow = time.Date(2024, time.April, 9, 9, 0, 0, 0, time.UTC)

type mockCalendar struct {
	created      []gcal.EventInput
	createResult *gcal.Event
	createErr    error

	listResult []gcal.Event
	listErr    error

	findResult  []gcal.Event
	findErr     error
	findQueries []string

	updatedIDs   []string
	updatedHours []float64
	updateResult *gcal.Event
	updateErr    error

	deletedIDs []string
	deleteErr  error
}

func (m *mockCalendar) CreateEvent(ctx context.Context, userID int64, input gcal.EventInput) (*gcal.Event, error) {
	m.created = append(m.created, input)
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.createResult != nil {
		return m.createResult, nil
	}
	return &gcal.Event{ID: "created-1", Summary: input.Summary, StartTime: input.StartTime, EndTime: input.EndTime}, nil
}

func (m *mockCalendar) ListEvents(ctx context.Context, userID int64, from, to time.Time, max int64) ([]gcal.Event, error) {
	return m.listResult, m.listErr
}

func (m *mockCalendar) FindEventsByQuery(ctx context.Context, userID int64, query string, from time.Time) ([]gcal.Event, error) {
	m.findQueries = append(m.findQueries, query)
	return m.findResult, m.findErr
}

func (m *mockCalendar) UpdateEventDuration(ctx context.Context, userID int64, eventID string, hours float64) (*gcal.Event, error) {
	m.updatedIDs = append(m.updatedIDs, eventID)
	m.updatedHours = append(m.updatedHours, hours)
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updateResult, nil
}

func (m *mockCalendar) DeleteEvent(ctx context.Context, userID int64, eventID string) error {
	m.deletedIDs = append(m.deletedIDs, eventID)
	return m.deleteErr
}

type mockAuth struct {
	authenticated bool
	exchangeErr   error
	codes         []string
}

func (m *mockAuth) IsAuthenticated(ctx context.Context, userID int64) (bool, error) {
	return m.authenticated, nil
}

func (m *mockAuth) AuthURL(userID int64) string {
	return "https://accounts.google.com/o/oauth2/auth?state=test"
}

func (m *mockAuth) ExchangeCode(ctx context.Context, userID int64, code string) error {
	if m.exchangeErr != nil {
		return m.exchangeErr
	}
	m.codes = append(m.codes, code)
	m.authenticated = true
	return nil
}

type fixture struct {
	engine   *Engine
	calendar *mockCalendar
	auth     *mockAuth
	db       *database.DB
	userID   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := database.NewTestDB(t)
	userID := database.CreateTestUser(t, db)
	calendar := &mockCalendar{}
	auth := &mockAuth{authenticated: true}

	engine := NewEngine(db, calendar, auth, nlp.NewRuleClassifier(), nil, time.UTC, 30*time.Minute)
	engine.now = func() time.Time { return testNow }

	return &fixture{engine: engine, calendar: calendar, auth: auth, db: db, userID: userID}
}

func (f *fixture) text(t *testing.T, msg string) Reply {
	t.Helper()
	reply, err := f.engine.HandleText(context.Background(), f.userID, msg)
	require.NoError(t, err)
	return reply
}

func (f *fixture) callback(t *testing.T, data string) Reply {
	t.Helper()
	reply, err := f.engine.HandleCallback(context.Background(), f.userID, data)
	require.NoError(t, err)
	return reply
}

func (f *fixture) command(t *testing.T, cmd, args string) Reply {
	t.Helper()
	reply, err := f.engine.HandleCommand(context.Background(), f.userID, cmd, args)
	require.NoError(t, err)
	return reply
}

func (f *fixture) storedState(t *testing.T) string {
	t.Helper()
	row, err := f.db.GetConversation(f.userID)
	require.NoError(t, err)
	require.NotNil(t, row)
	return row.State
}

func TestCreateMeetingFullFlow(t *testing.T) {
	f := newFixture(t)
	f.calendar.createResult = &gcal.Event{
		ID:        "ev1",
		Summary:   "Reunião",
		StartTime: time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 4, 10, 11, 0, 0, 0, time.UTC),
		MeetLink:  "https://meet.google.com/abc-defg-hij",
	}

	// Date and time are present, the utterance is a meeting, so the
	// next question is the Meet link, as buttons.
	reply := f.text(t, "Agendar reunião amanhã às 10h")
	assert.Equal(t, msgAskAddMeet, reply.Text)
	require.Len(t, reply.Buttons, 2)
	assert.Equal(t, callbackMeetYes, reply.Buttons[0].Data)
	assert.Equal(t, "AWAITING_ADD_MEET", f.storedState(t))

	// Accepting the Meet link with no attendees asks for attendees.
	reply = f.callback(t, callbackMeetYes)
	assert.Equal(t, msgAskAttendees, reply.Text)
	assert.Equal(t, "AWAITING_ATTENDEES", f.storedState(t))

	// Attendees complete the action.
	reply = f.text(t, "ana@empresa.com, bruno@empresa.com")
	assert.Contains(t, reply.Text, "✅ Evento criado com sucesso!")
	assert.Contains(t, reply.Text, "https://meet.google.com/abc-defg-hij")
	assert.Equal(t, "NORMAL", f.storedState(t))

	require.Len(t, f.calendar.created, 1)
	input := f.calendar.created[0]
	assert.Equal(t, time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC), input.StartTime)
	assert.Equal(t, time.Date(2024, 4, 10, 11, 0, 0, 0, time.UTC), input.EndTime)
	assert.True(t, input.AddMeetLink)
	assert.Equal(t, []string{"ana@empresa.com", "bruno@empresa.com"}, input.Attendees)
}

func TestCreateAsksDateThenTime(t *testing.T) {
	f := newFixture(t)

	reply := f.text(t, "Agendar dentista")
	assert.Equal(t, msgAskDate, reply.Text)
	assert.Equal(t, "AWAITING_DATE", f.storedState(t))

	reply = f.text(t, "amanhã")
	assert.Equal(t, msgAskTime, reply.Text)
	assert.Equal(t, "AWAITING_TIME", f.storedState(t))

	// Not a meeting, so no Meet question: the event is created.
	reply = f.text(t, "às 15h")
	assert.Contains(t, reply.Text, "✅ Evento criado com sucesso!")
	assert.Equal(t, "NORMAL", f.storedState(t))

	require.Len(t, f.calendar.created, 1)
	input := f.calendar.created[0]
	assert.Equal(t, "Dentista", input.Summary)
	assert.Equal(t, time.Date(2024, 4, 10, 15, 0, 0, 0, time.UTC), input.StartTime)
	assert.Equal(t, time.Hour, input.EndTime.Sub(input.StartTime))
	assert.False(t, input.AddMeetLink)
}

func TestSlotAnswersMatchFullUtterance(t *testing.T) {
	full := newFixture(t)
	full.text(t, "Agendar dentista amanhã às 15h")

	steps := newFixture(t)
	steps.text(t, "Agendar dentista amanhã")
	steps.text(t, "15h")

	require.Len(t, full.calendar.created, 1)
	require.Len(t, steps.calendar.created, 1)
	assert.Equal(t, full.calendar.created[0], steps.calendar.created[0])
}

func TestMeetDeclined(t *testing.T) {
	f := newFixture(t)

	f.text(t, "Agendar reunião amanhã às 10h")
	reply := f.callback(t, callbackMeetNo)

	assert.Contains(t, reply.Text, "✅ Evento criado com sucesso!")
	require.Len(t, f.calendar.created, 1)
	assert.False(t, f.calendar.created[0].AddMeetLink)
	assert.Empty(t, f.calendar.created[0].Attendees)
}

func TestMeetAnsweredAsText(t *testing.T) {
	f := newFixture(t)

	f.text(t, "Agendar reunião amanhã às 10h")
	reply := f.text(t, "não")

	assert.Contains(t, reply.Text, "✅ Evento criado com sucesso!")
	require.Len(t, f.calendar.created, 1)
	assert.False(t, f.calendar.created[0].AddMeetLink)
}

func TestBadSlotAnswerRepromptsInPlace(t *testing.T) {
	f := newFixture(t)

	f.text(t, "Agendar dentista")
	reply := f.text(t, "sei lá")

	assert.Equal(t, msgBadDate, reply.Text)
	assert.Equal(t, "AWAITING_DATE", f.storedState(t))

	// The conversation is still alive: a valid answer moves on.
	reply = f.text(t, "sexta")
	assert.Equal(t, msgAskTime, reply.Text)
}

func TestUnknownIntent(t *testing.T) {
	f := newFixture(t)

	reply := f.text(t, "qwerty asdfgh")
	assert.Equal(t, msgNotUnderstood, reply.Text)
	assert.Equal(t, "NORMAL", f.storedState(t))
	assert.Empty(t, f.calendar.created)
}

func TestNotConnected(t *testing.T) {
	f := newFixture(t)
	f.auth.authenticated = false

	reply := f.text(t, "Agendar reunião amanhã às 10h")
	assert.Equal(t, msgNotConnected, reply.Text)
	assert.Empty(t, f.calendar.created)
}

func TestDeleteFlowWithDisambiguation(t *testing.T) {
	f := newFixture(t)
	f.calendar.findResult = []gcal.Event{
		{ID: "ev1", Summary: "Reunião de vendas", StartTime: time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC)},
		{ID: "ev2", Summary: "Reunião de planejamento", StartTime: time.Date(2024, 4, 11, 14, 0, 0, 0, time.UTC)},
	}

	reply := f.text(t, "Cancelar a reunião")
	assert.Equal(t, msgAskEventRefDelete, reply.Text)

	reply = f.text(t, "reunião")
	assert.Contains(t, reply.Text, "Encontrei vários eventos")
	assert.Contains(t, reply.Text, "1. Reunião de vendas")
	assert.Contains(t, reply.Text, "2. Reunião de planejamento")
	assert.Equal(t, "AWAITING_EVENT_REF", f.storedState(t))

	// Numeric pick goes to the delete confirmation.
	reply = f.text(t, "2")
	assert.Contains(t, reply.Text, "Você deseja excluir este evento?")
	assert.Contains(t, reply.Text, "Reunião de planejamento")
	require.Len(t, reply.Buttons, 2)
	assert.Equal(t, "CONFIRM_DELETE", f.storedState(t))

	reply = f.callback(t, callbackDeleteYes)
	assert.Equal(t, msgDeleteSuccess, reply.Text)
	assert.Equal(t, []string{"ev2"}, f.calendar.deletedIDs)
	assert.Equal(t, "NORMAL", f.storedState(t))
}

func TestDisambiguationByTitle(t *testing.T) {
	f := newFixture(t)
	f.calendar.findResult = []gcal.Event{
		{ID: "ev1", Summary: "Reunião de vendas", StartTime: time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC)},
		{ID: "ev2", Summary: "Entrevista técnica", StartTime: time.Date(2024, 4, 11, 14, 0, 0, 0, time.UTC)},
	}

	f.text(t, "Cancelar a reunião")
	f.text(t, "reunião")

	reply := f.text(t, "entrevista técnica")
	assert.Contains(t, reply.Text, "Você deseja excluir este evento?")
	assert.Contains(t, reply.Text, "Entrevista técnica")
}

func TestDisambiguationBadAnswerStays(t *testing.T) {
	f := newFixture(t)
	f.calendar.findResult = []gcal.Event{
		{ID: "ev1", Summary: "Reunião de vendas", StartTime: time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC)},
		{ID: "ev2", Summary: "Reunião de planejamento", StartTime: time.Date(2024, 4, 11, 14, 0, 0, 0, time.UTC)},
	}

	f.text(t, "Cancelar a reunião")
	f.text(t, "reunião")

	reply := f.text(t, "9")
	assert.Equal(t, msgChooseCandidate, reply.Text)
	assert.Equal(t, "AWAITING_EVENT_REF", f.storedState(t))
}

func TestDeleteCancelled(t *testing.T) {
	f := newFixture(t)
	f.calendar.findResult = []gcal.Event{
		{ID: "ev1", Summary: "Reunião de vendas", StartTime: time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC)},
	}

	f.text(t, "Cancelar a reunião")
	f.text(t, "vendas")
	reply := f.callback(t, callbackDeleteNo)

	assert.Equal(t, msgCancelled, reply.Text)
	assert.Empty(t, f.calendar.deletedIDs)
	assert.Equal(t, "NORMAL", f.storedState(t))
}

func TestNoMatchingEventsReprompts(t *testing.T) {
	f := newFixture(t)
	f.calendar.findResult = nil

	f.text(t, "Cancelar a reunião")
	reply := f.text(t, "algo que não existe")

	assert.Equal(t, msgNoEventsFound, reply.Text)
	assert.Equal(t, "AWAITING_EVENT_REF", f.storedState(t))
}

func TestUpdateDurationFlow(t *testing.T) {
	f := newFixture(t)
	f.calendar.findResult = []gcal.Event{
		{ID: "ev1", Summary: "Reunião com o cliente", StartTime: time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC)},
	}
	f.calendar.updateResult = &gcal.Event{
		ID:        "ev1",
		Summary:   "Reunião com o cliente",
		StartTime: time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 4, 10, 11, 30, 0, 0, time.UTC),
	}

	reply := f.text(t, "aumentar duração da reunião com o cliente")
	assert.Equal(t, msgAskEventRefUpdate, reply.Text)

	reply = f.text(t, "reunião com o cliente")
	assert.Equal(t, msgAskNewDuration, reply.Text)
	assert.Equal(t, "AWAITING_DURATION", f.storedState(t))

	reply = f.text(t, "1 hora e meia")
	assert.Contains(t, reply.Text, "✅ Duração atualizada com sucesso!")
	assert.Contains(t, reply.Text, "10:00 - 11:30")
	assert.Contains(t, reply.Text, "1,5 horas")
	assert.Equal(t, []string{"ev1"}, f.calendar.updatedIDs)
	assert.Equal(t, []float64{1.5}, f.calendar.updatedHours)
	assert.Equal(t, "NORMAL", f.storedState(t))
}

func TestListEventsForToday(t *testing.T) {
	f := newFixture(t)
	f.calendar.listResult = []gcal.Event{
		{
			ID:        "ev1",
			Summary:   "Daily",
			StartTime: time.Date(2024, 4, 9, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 4, 9, 10, 15, 0, 0, time.UTC),
			MeetLink:  "https://meet.google.com/abc",
		},
		{
			ID:        "ev2",
			Summary:   "Feriado",
			StartTime: time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
			AllDay:    true,
		},
	}

	reply := f.text(t, "o que tenho hoje?")
	assert.Contains(t, reply.Text, "📅 Eventos para Terça, 09/04/2024")
	assert.Contains(t, reply.Text, "🕒 10:00 - 10:15: Daily 📹")
	assert.Contains(t, reply.Text, "📌 Feriado (dia todo)")
}

func TestListEventsEmpty(t *testing.T) {
	f := newFixture(t)

	reply := f.text(t, "quais são meus próximos compromissos?")
	assert.Equal(t, "Não há eventos próximos agendados.", reply.Text)
}

func TestCalendarErrorDiscardsPending(t *testing.T) {
	f := newFixture(t)
	f.calendar.createErr = assert.AnError

	reply := f.text(t, "Agendar dentista amanhã às 15h")
	assert.Contains(t, reply.Text, "❌ Erro ao criar evento")
	assert.Equal(t, "NORMAL", f.storedState(t))

	row, err := f.db.GetConversation(f.userID)
	require.NoError(t, err)
	assert.Nil(t, row.Pending)
}

func TestPendingActionExpires(t *testing.T) {
	f := newFixture(t)
	f.engine.now = time.Now

	f.text(t, "Agendar reunião amanhã às 10h")
	assert.Equal(t, "AWAITING_ADD_MEET", f.storedState(t))

	f.engine.now = func() time.Time { return time.Now().Add(31 * time.Minute) }

	reply := f.text(t, "sim")
	assert.Contains(t, reply.Text, "⏳ A operação anterior expirou")
	assert.Equal(t, "NORMAL", f.storedState(t))
	assert.Empty(t, f.calendar.created)
}

func TestUnknownPersistedStateResets(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.SaveConversation(f.userID, "SOMETHING_ELSE", nil))

	reply := f.text(t, "qwerty asdfgh")
	assert.Contains(t, reply.Text, "Vamos recomeçar")
	assert.Equal(t, "NORMAL", f.storedState(t))
}

func TestConnectFlow(t *testing.T) {
	f := newFixture(t)
	f.auth.authenticated = false

	reply := f.command(t, "conectar", "")
	assert.Contains(t, reply.Text, "https://accounts.google.com/o/oauth2/auth?state=test")
	assert.Equal(t, "AWAITING_AUTH_CODE", f.storedState(t))

	reply = f.text(t, "4/authcode123")
	assert.Contains(t, reply.Text, "🎉 Conectado ao Google Calendar com sucesso!")
	assert.Equal(t, []string{"4/authcode123"}, f.auth.codes)
	assert.Equal(t, "NORMAL", f.storedState(t))
}

func TestConnectFlowBadCode(t *testing.T) {
	f := newFixture(t)
	f.auth.authenticated = false
	f.auth.exchangeErr = assert.AnError

	f.command(t, "conectar", "")
	reply := f.text(t, "garbage")

	assert.Equal(t, msgAuthFailed, reply.Text)
	assert.Equal(t, "AWAITING_AUTH_CODE", f.storedState(t))
}

func TestStartCommand(t *testing.T) {
	f := newFixture(t)

	reply := f.command(t, "start", "")
	assert.Contains(t, reply.Text, "Você já está conectado ao Google Calendar")

	f.auth.authenticated = false
	reply = f.command(t, "start", "")
	assert.Contains(t, reply.Text, "Bem-vindo")
}

func TestResetCommand(t *testing.T) {
	f := newFixture(t)

	reply := f.command(t, "resetar", "")
	assert.Equal(t, msgNothingToReset, reply.Text)

	f.text(t, "Agendar dentista")
	reply = f.command(t, "resetar", "")
	assert.Equal(t, msgReset, reply.Text)
	assert.Equal(t, "NORMAL", f.storedState(t))
}

func TestEmailCommand(t *testing.T) {
	f := newFixture(t)

	reply := f.command(t, "email", "")
	assert.Equal(t, msgEmailUsage, reply.Text)

	reply = f.command(t, "email", "not an email")
	assert.Equal(t, msgEmailInvalid, reply.Text)

	reply = f.command(t, "email", "ricardo@example.com")
	assert.Contains(t, reply.Text, "ricardo@example.com")

	stored, err := f.db.GetNotifyEmail(f.userID)
	require.NoError(t, err)
	assert.Equal(t, "ricardo@example.com", stored)
}

func TestHelpCommand(t *testing.T) {
	f := newFixture(t)

	reply := f.command(t, "ajuda", "")
	assert.Contains(t, reply.Text, "Assistente de Calendário - Comandos")
}

func TestFusoCommand(t *testing.T) {
	f := newFixture(t)

	reply := f.command(t, "fuso", "")
	assert.Contains(t, reply.Text, "fuso horário padrão (UTC)")

	reply = f.command(t, "fuso", "Marte/Olympus")
	assert.Equal(t, msgFusoInvalid, reply.Text)

	reply = f.command(t, "fuso", "America/Sao_Paulo")
	assert.Contains(t, reply.Text, "✅ Fuso horário atualizado para America/Sao_Paulo.")

	stored, err := f.db.GetUserTimezone(f.userID)
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", stored)

	reply = f.command(t, "fuso", "")
	assert.Contains(t, reply.Text, "Seu fuso horário atual é America/Sao_Paulo.")
}

func TestCreateUsesUserTimezone(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.UpdateUserTimezone(f.userID, "America/Sao_Paulo"))

	// 09:00 UTC is still Tuesday morning in São Paulo, so "amanhã"
	// resolves to the same date, but 15h means 15:00 UTC-3.
	reply := f.text(t, "Agendar dentista amanhã às 15h")
	assert.Contains(t, reply.Text, "✅ Evento criado com sucesso!")

	require.Len(t, f.calendar.created, 1)
	start := f.calendar.created[0].StartTime
	assert.Equal(t, time.Date(2024, 4, 10, 18, 0, 0, 0, time.UTC), start.UTC())
}
