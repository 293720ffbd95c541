// Package dialog implements the slot-filling conversation that turns
// free-form Portuguese requests into calendar actions. Each user has
// at most one pending action; the engine asks for whatever is still
// missing, one slot per turn, and executes once everything is bound.
package dialog

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ricardomaia/agendador/internal/database"
	"github.com/ricardomaia/agendador/internal/gcal"
	"github.com/ricardomaia/agendador/internal/nlp"
	"github.com/ricardomaia/agendador/internal/timeutil"
)

// Button is one inline-keyboard choice attached to a reply.
type Button struct {
	Label string
	Data  string
}

// Reply is what the transport renders back to the user.
type Reply struct {
	Text    string
	Buttons []Button
}

// Calendar is the calendar collaborator the engine executes against.
type Calendar interface {
	CreateEvent(ctx context.Context, userID int64, input gcal.EventInput) (*gcal.Event, error)
	ListEvents(ctx context.Context, userID int64, from, to time.Time, max int64) ([]gcal.Event, error)
	FindEventsByQuery(ctx context.Context, userID int64, query string, from time.Time) ([]gcal.Event, error)
	UpdateEventDuration(ctx context.Context, userID int64, eventID string, hours float64) (*gcal.Event, error)
	DeleteEvent(ctx context.Context, userID int64, eventID string) error
}

// Authenticator manages each user's Google Calendar connection.
type Authenticator interface {
	IsAuthenticated(ctx context.Context, userID int64) (bool, error)
	AuthURL(userID int64) string
	ExchangeCode(ctx context.Context, userID int64, code string) error
}

// Notifier sends event-creation confirmations out of band.
type Notifier interface {
	EventCreated(ctx context.Context, to string, ev *gcal.Event) error
}

const maxCandidates = 5

// Engine drives one conversation turn at a time. It is stateless
// between turns; everything lives in the conversations table.
type Engine struct {
	db         *database.DB
	calendar   Calendar
	auth       Authenticator
	classifier nlp.Classifier
	notifier   Notifier // optional
	loc        *time.Location
	pendingTTL time.Duration
	now        func() time.Time
}

// NewEngine wires a dialog engine. notifier may be nil when e-mail
// confirmations are not configured.
func NewEngine(db *database.DB, calendar Calendar, auth Authenticator, classifier nlp.Classifier, notifier Notifier, loc *time.Location, pendingTTL time.Duration) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		db:         db,
		calendar:   calendar,
		auth:       auth,
		classifier: classifier,
		notifier:   notifier,
		loc:        loc,
		pendingTTL: pendingTTL,
		now:        time.Now,
	}
}

// locFor resolves the user's preferred timezone, falling back to the
// bot default when unset or invalid.
func (e *Engine) locFor(userID int64) *time.Location {
	tz, err := e.db.GetUserTimezone(userID)
	if err != nil {
		log.Printf("Warning: could not look up timezone for user %d: %v", userID, err)
		return e.loc
	}
	return timeutil.ResolveLocation(tz, e.loc)
}

func (e *Engine) localNow(loc *time.Location) time.Time {
	return e.now().In(loc)
}

// loadConversation restores the persisted state. Unknown state names
// and corrupt pending blobs reset to NORMAL; an idle pending action
// past the TTL lapses. Either case returns a notice to prepend to the
// turn's reply.
func (e *Engine) loadConversation(userID int64) (*Conversation, string, error) {
	conv := &Conversation{UserID: userID, State: StateNormal}

	row, err := e.db.GetConversation(userID)
	if err != nil {
		return nil, "", err
	}
	if row == nil {
		return conv, "", nil
	}

	state, ok := ParseState(row.State)
	if !ok {
		log.Printf("Warning: unknown conversation state %q for user %d, resetting", row.State, userID)
		return conv, msgStateReset, nil
	}

	pending, err := decodePending(row.Pending)
	if err != nil {
		log.Printf("Warning: corrupt pending action for user %d, resetting: %v", userID, err)
		return conv, msgStateReset, nil
	}

	conv.State = state
	conv.Pending = pending
	conv.UpdatedAt = row.UpdatedAt

	if conv.Pending != nil && e.pendingTTL > 0 && e.now().Sub(conv.UpdatedAt) > e.pendingTTL {
		conv.State = StateNormal
		conv.Pending = nil
		return conv, msgPendingExpired, nil
	}

	return conv, "", nil
}

func (e *Engine) save(conv *Conversation) error {
	data, err := encodePending(conv.Pending)
	if err != nil {
		return err
	}
	return e.db.SaveConversation(conv.UserID, conv.State.String(), data)
}

// HandleText processes one inbound text message.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string) (Reply, error) {
	text = strings.TrimSpace(text)

	conv, notice, err := e.loadConversation(userID)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	switch conv.State {
	case StateAwaitingAuthCode:
		reply, err = e.handleAuthCode(ctx, conv, text)
	case StateAwaitingDate:
		reply, err = e.handleAwaitingDate(ctx, conv, text)
	case StateAwaitingTime:
		reply, err = e.handleAwaitingTime(ctx, conv, text)
	case StateAwaitingDuration:
		reply, err = e.handleAwaitingDuration(ctx, conv, text)
	case StateAwaitingAddMeet:
		reply, err = e.handleAwaitingAddMeet(ctx, conv, text)
	case StateAwaitingAttendees:
		reply, err = e.handleAwaitingAttendees(ctx, conv, text)
	case StateAwaitingEventRef:
		reply, err = e.handleAwaitingEventRef(ctx, conv, text)
	case StateConfirmDelete:
		reply, err = e.handleConfirmDelete(ctx, conv, text)
	default:
		reply, err = e.handleNormal(ctx, conv, text)
	}
	if err != nil {
		return Reply{}, err
	}

	if err := e.save(conv); err != nil {
		return Reply{}, err
	}

	reply.Text = notice + reply.Text
	return reply, nil
}

// HandleCallback processes an inline-keyboard button press.
func (e *Engine) HandleCallback(ctx context.Context, userID int64, data string) (Reply, error) {
	conv, notice, err := e.loadConversation(userID)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	switch data {
	case callbackMeetYes, callbackMeetNo:
		if conv.State != StateAwaitingAddMeet || conv.Pending == nil {
			reply = e.resetWith(conv, msgCallbackError)
		} else {
			yes := data == callbackMeetYes
			conv.Pending.Entities.AddMeetLink = &yes
			reply, err = e.advance(ctx, conv)
		}

	case callbackDeleteYes:
		if conv.State != StateConfirmDelete || conv.Pending == nil {
			reply = e.resetWith(conv, msgCallbackError)
		} else {
			reply, err = e.executeDelete(ctx, conv)
		}

	case callbackDeleteNo:
		if conv.State != StateConfirmDelete {
			reply = e.resetWith(conv, msgCallbackError)
		} else {
			reply = e.resetWith(conv, msgCancelled)
		}

	default:
		reply = e.resetWith(conv, msgCallbackError)
	}
	if err != nil {
		return Reply{}, err
	}

	if err := e.save(conv); err != nil {
		return Reply{}, err
	}

	reply.Text = notice + reply.Text
	return reply, nil
}

// HandleCommand processes a /command. args is everything after the
// command word, already trimmed by the transport.
func (e *Engine) HandleCommand(ctx context.Context, userID int64, command, args string) (Reply, error) {
	conv, notice, err := e.loadConversation(userID)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	switch command {
	case "start":
		conv.State = StateNormal
		conv.Pending = nil
		authed, authErr := e.auth.IsAuthenticated(ctx, userID)
		if authErr != nil {
			return Reply{}, authErr
		}
		if authed {
			reply = Reply{Text: msgWelcomeConnected}
		} else {
			reply = Reply{Text: msgWelcome}
		}

	case "ajuda", "help":
		reply = Reply{Text: msgHelp}

	case "conectar":
		conv.State = StateAwaitingAuthCode
		conv.Pending = nil
		reply = Reply{Text: fmt.Sprintf(
			"Para conectar seu Google Calendar, abra o link abaixo e autorize o acesso:\n\n%s\n\n%s",
			e.auth.AuthURL(userID), msgAuthCodePrompt)}

	case "resetar":
		if conv.State == StateNormal && conv.Pending == nil {
			reply = Reply{Text: msgNothingToReset}
		} else {
			reply = e.resetWith(conv, msgReset)
		}

	case "email":
		reply, err = e.handleEmailCommand(ctx, userID, args)
		if err != nil {
			return Reply{}, err
		}

	case "fuso":
		reply, err = e.handleFusoCommand(userID, args)
		if err != nil {
			return Reply{}, err
		}

	default:
		reply = Reply{Text: msgNotUnderstood}
	}

	if err := e.save(conv); err != nil {
		return Reply{}, err
	}

	reply.Text = notice + reply.Text
	return reply, nil
}

func (e *Engine) handleEmailCommand(ctx context.Context, userID int64, args string) (Reply, error) {
	address := strings.TrimSpace(args)
	if address == "" {
		current, err := e.db.GetNotifyEmail(userID)
		if err != nil {
			return Reply{}, err
		}
		if current != "" {
			return Reply{Text: fmt.Sprintf("Confirmações são enviadas para %s.\n\n%s", current, msgEmailUsage)}, nil
		}
		return Reply{Text: msgEmailUsage}, nil
	}

	if !strings.Contains(address, "@") || strings.ContainsAny(address, " \t") {
		return Reply{Text: msgEmailInvalid}, nil
	}

	if err := e.db.SetNotifyEmail(userID, address); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("✅ Confirmações de eventos serão enviadas para %s.", address)}, nil
}

func (e *Engine) handleFusoCommand(userID int64, args string) (Reply, error) {
	name := strings.TrimSpace(args)
	if name == "" {
		current, err := e.db.GetUserTimezone(userID)
		if err != nil {
			return Reply{}, err
		}
		if current != "" {
			return Reply{Text: fmt.Sprintf("Seu fuso horário atual é %s.\n\n%s", current, msgFusoUsage)}, nil
		}
		return Reply{Text: fmt.Sprintf("Estou usando o fuso horário padrão (%s).\n\n%s", e.loc.String(), msgFusoUsage)}, nil
	}

	if !timeutil.IsValidTimezone(name) {
		return Reply{Text: msgFusoInvalid}, nil
	}

	if err := e.db.UpdateUserTimezone(userID, name); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("✅ Fuso horário atualizado para %s.", name)}, nil
}

// resetWith clears the pending action and answers with the given text.
func (e *Engine) resetWith(conv *Conversation, text string) Reply {
	conv.State = StateNormal
	conv.Pending = nil
	return Reply{Text: text}
}

// handleNormal classifies a fresh utterance and either executes it or
// starts asking for missing slots.
func (e *Engine) handleNormal(ctx context.Context, conv *Conversation, text string) (Reply, error) {
	authed, err := e.auth.IsAuthenticated(ctx, conv.UserID)
	if err != nil {
		return Reply{}, err
	}
	if !authed {
		return Reply{Text: msgNotConnected}, nil
	}

	intent := e.classifier.Classify(text)
	if intent == nlp.IntentUnknown {
		return Reply{Text: msgNotUnderstood}, nil
	}

	entities := nlp.ExtractEntities(text, e.localNow(e.locFor(conv.UserID)))
	conv.Pending = &PendingAction{Intent: intent, Entities: entities}

	return e.advance(ctx, conv)
}

// advance recomputes the missing slots and either asks for the next
// one or executes the pending action.
func (e *Engine) advance(ctx context.Context, conv *Conversation) (Reply, error) {
	missing := nlp.MissingSlots(conv.Pending.Intent, conv.Pending.Entities)
	if len(missing) == 0 {
		return e.execute(ctx, conv)
	}
	return e.promptFor(conv, missing[0]), nil
}

func (e *Engine) promptFor(conv *Conversation, slot nlp.Slot) Reply {
	switch slot {
	case nlp.SlotDate:
		conv.State = StateAwaitingDate
		return Reply{Text: msgAskDate}

	case nlp.SlotTime:
		conv.State = StateAwaitingTime
		return Reply{Text: msgAskTime}

	case nlp.SlotDuration:
		conv.State = StateAwaitingDuration
		if conv.Pending.Intent == nlp.IntentUpdateDuration {
			return Reply{Text: msgAskNewDuration}
		}
		return Reply{Text: msgAskDuration}

	case nlp.SlotAddMeetLink:
		conv.State = StateAwaitingAddMeet
		return Reply{Text: msgAskAddMeet, Buttons: meetButtons()}

	case nlp.SlotAttendees:
		conv.State = StateAwaitingAttendees
		return Reply{Text: msgAskAttendees}

	case nlp.SlotEventRef:
		conv.State = StateAwaitingEventRef
		if conv.Pending.Intent == nlp.IntentDeleteEvent {
			return Reply{Text: msgAskEventRefDelete}
		}
		return Reply{Text: msgAskEventRefUpdate}
	}

	// A slot the dialog does not know how to ask for is a bug; bail
	// out instead of looping forever.
	log.Printf("Warning: no prompt for slot %q, resetting conversation %d", slot, conv.UserID)
	return e.resetWith(conv, msgCallbackError)
}

func meetButtons() []Button {
	return []Button{
		{Label: btnYes, Data: callbackMeetYes},
		{Label: btnNo, Data: callbackMeetNo},
	}
}

func (e *Engine) handleAuthCode(ctx context.Context, conv *Conversation, text string) (Reply, error) {
	if text == "" {
		return Reply{Text: msgAuthCodePrompt}, nil
	}

	if err := e.auth.ExchangeCode(ctx, conv.UserID, text); err != nil {
		log.Printf("Warning: oauth code exchange failed for user %d: %v", conv.UserID, err)
		return Reply{Text: msgAuthFailed}, nil
	}

	conv.State = StateNormal
	return Reply{Text: msgAuthSuccess}, nil
}

func (e *Engine) handleAwaitingDate(ctx context.Context, conv *Conversation, text string) (Reply, error) {
	if conv.Pending == nil {
		conv.State = StateNormal
		return e.handleNormal(ctx, conv, text)
	}

	date, ok := nlp.ExtractDate(text, e.localNow(e.locFor(conv.UserID)))
	if !ok {
		return Reply{Text: msgBadDate}, nil
	}

	conv.Pending.Entities.Date = date
	return e.advance(ctx, conv)
}

func (e *Engine) handleAwaitingTime(ctx context.Context, conv *Conversation, text string) (Reply, error) {
	if conv.Pending == nil {
		conv.State = StateNormal
		return e.handleNormal(ctx, conv, text)
	}

	clock, ok := nlp.ExtractTime(text)
	if !ok {
		return Reply{Text: msgBadTime}, nil
	}

	conv.Pending.Entities.Time = clock
	return e.advance(ctx, conv)
}

func (e *Engine) handleAwaitingDuration(ctx context.Context, conv *Conversation, text string) (Reply, error) {
	if conv.Pending == nil {
		conv.State = StateNormal
		return e.handleNormal(ctx, conv, text)
	}

	duration, ok := nlp.ExtractDuration(text)
	if !ok {
		return Reply{Text: msgBadDuration}, nil
	}

	conv.Pending.Entities.Duration = duration
	return e.advance(ctx, conv)
}

func (e *Engine) handleAwaitingAddMeet(ctx context.Context, conv *Conversation, text string) (Reply, error) {
	if conv.Pending == nil {
		conv.State = StateNormal
		return e.handleNormal(ctx, conv, text)
	}

	// The question is button-driven, but a typed sim/não works too.
	switch {
	case isYes(text):
		yes := true
		conv.Pending.Entities.AddMeetLink = &yes
	case isNo(text):
		no := false
		conv.Pending.Entities.AddMeetLink = &no
	default:
		return Reply{Text: msgAskAddMeet, Buttons: meetButtons()}, nil
	}

	return e.advance(ctx, conv)
}

func (e *Engine) handleAwaitingAttendees(ctx context.Context, conv *Conversation, text string) (Reply, error) {
	if conv.Pending == nil {
		conv.State = StateNormal
		return e.handleNormal(ctx, conv, text)
	}

	var attendees []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			attendees = append(attendees, part)
		}
	}
	if len(attendees) == 0 {
		return Reply{Text: msgBadAttendees}, nil
	}

	conv.Pending.Entities.Attendees = attendees
	return e.advance(ctx, conv)
}

func (e *Engine) handleAwaitingEventRef(ctx context.Context, conv *Conversation, text string) (Reply, error) {
	if conv.Pending == nil {
		conv.State = StateNormal
		return e.handleNormal(ctx, conv, text)
	}
	p := conv.Pending

	// Already showed candidates: this turn picks one, by number or title.
	if len(p.Candidates) > 0 {
		chosen, ok := pickCandidate(p.Candidates, text)
		if !ok {
			return Reply{Text: msgChooseCandidate}, nil
		}
		p.Entities.EventID = chosen.ID
		p.Entities.EventRef = chosen.Summary
		p.Candidates = nil
		return e.eventBound(ctx, conv, chosen)
	}

	loc := e.locFor(conv.UserID)
	events, err := e.calendar.FindEventsByQuery(ctx, conv.UserID, text, e.localNow(loc))
	if err != nil {
		return e.resetWith(conv, fmt.Sprintf("❌ Erro ao buscar eventos: %v", err)), nil
	}

	switch {
	case len(events) == 0:
		return Reply{Text: msgNoEventsFound}, nil

	case len(events) == 1:
		ev := events[0]
		p.Entities.EventID = ev.ID
		p.Entities.EventRef = ev.Summary
		return e.eventBound(ctx, conv, Candidate{ID: ev.ID, Summary: ev.Summary, Start: ev.StartTime})

	default:
		if len(events) > maxCandidates {
			events = events[:maxCandidates]
		}
		p.Candidates = p.Candidates[:0]
		var b strings.Builder
		b.WriteString("Encontrei vários eventos. Qual deles você deseja?\n\n")
		for i, ev := range events {
			p.Candidates = append(p.Candidates, Candidate{ID: ev.ID, Summary: ev.Summary, Start: ev.StartTime})
			start := ev.StartTime.In(loc)
			fmt.Fprintf(&b, "%d. %s - %s\n", i+1, ev.Summary, start.Format("02/01/2006 15:04"))
		}
		b.WriteString("\n")
		b.WriteString(msgChooseCandidate)
		return Reply{Text: b.String()}, nil
	}
}

// pickCandidate resolves a disambiguation answer: a 1-based index into
// the listed candidates, or a reply matching exactly one title.
func pickCandidate(candidates []Candidate, text string) (Candidate, bool) {
	text = strings.TrimSpace(text)

	if n, err := strconv.Atoi(strings.TrimSuffix(text, ".")); err == nil {
		if n >= 1 && n <= len(candidates) {
			return candidates[n-1], true
		}
		return Candidate{}, false
	}

	lower := strings.ToLower(text)
	var matched []Candidate
	for _, c := range candidates {
		summary := strings.ToLower(c.Summary)
		if strings.Contains(summary, lower) || strings.Contains(lower, summary) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 1 {
		return matched[0], true
	}
	return Candidate{}, false
}

// eventBound routes a freshly identified event by intent: deletion
// asks for confirmation, duration changes continue slot filling.
func (e *Engine) eventBound(ctx context.Context, conv *Conversation, c Candidate) (Reply, error) {
	switch conv.Pending.Intent {
	case nlp.IntentDeleteEvent:
		conv.State = StateConfirmDelete
		start := c.Start.In(e.locFor(conv.UserID))
		return Reply{
			Text: fmt.Sprintf("Você deseja excluir este evento?\n\n📝 %s\n📅 %s\n🕒 %s",
				c.Summary, start.Format("02/01/2006"), start.Format("15:04")),
			Buttons: []Button{
				{Label: btnDeleteYes, Data: callbackDeleteYes},
				{Label: btnDeleteNo, Data: callbackDeleteNo},
			},
		}, nil

	case nlp.IntentUpdateEvent:
		// Only duration edits are supported; steer the pending action
		// there instead of dead-ending.
		conv.Pending.Intent = nlp.IntentUpdateDuration
		conv.State = StateAwaitingDuration
		return Reply{Text: msgUpdateOnlyDuration}, nil

	default:
		return e.advance(ctx, conv)
	}
}

func (e *Engine) handleConfirmDelete(ctx context.Context, conv *Conversation, text string) (Reply, error) {
	if conv.Pending == nil {
		conv.State = StateNormal
		return e.handleNormal(ctx, conv, text)
	}

	switch {
	case isYes(text):
		return e.executeDelete(ctx, conv)
	case isNo(text):
		return e.resetWith(conv, msgCancelled), nil
	default:
		return Reply{
			Text: fmt.Sprintf("Você deseja excluir o evento %q?", conv.Pending.Entities.EventRef),
			Buttons: []Button{
				{Label: btnDeleteYes, Data: callbackDeleteYes},
				{Label: btnDeleteNo, Data: callbackDeleteNo},
			},
		}, nil
	}
}

// execute dispatches a fully specified pending action.
func (e *Engine) execute(ctx context.Context, conv *Conversation) (Reply, error) {
	switch conv.Pending.Intent {
	case nlp.IntentCreateEvent:
		return e.executeCreate(ctx, conv)
	case nlp.IntentListEvents:
		return e.executeList(ctx, conv)
	case nlp.IntentUpdateDuration:
		return e.executeUpdateDuration(ctx, conv)
	case nlp.IntentDeleteEvent:
		// Deletion always passes through the confirmation step.
		return e.eventBound(ctx, conv, Candidate{
			ID:      conv.Pending.Entities.EventID,
			Summary: conv.Pending.Entities.EventRef,
			Start:   e.localNow(e.locFor(conv.UserID)),
		})
	case nlp.IntentUpdateEvent:
		conv.Pending.Intent = nlp.IntentUpdateDuration
		conv.State = StateAwaitingDuration
		return Reply{Text: msgUpdateOnlyDuration}, nil
	}

	return e.resetWith(conv, msgNotUnderstood), nil
}

func (e *Engine) executeCreate(ctx context.Context, conv *Conversation) (Reply, error) {
	ent := conv.Pending.Entities
	userID := conv.UserID
	e.resetWith(conv, "")

	start, err := time.ParseInLocation(nlp.ISODate+" 15:04", ent.Date+" "+ent.Time, e.locFor(userID))
	if err != nil {
		return Reply{Text: fmt.Sprintf("❌ Erro ao criar evento: data ou horário inválido (%s %s)", ent.Date, ent.Time)}, nil
	}

	duration := ent.Duration
	if duration <= 0 {
		duration = 1
	}

	summary := ent.Summary
	if summary == "" {
		summary = "Evento"
	}

	input := gcal.EventInput{
		Summary:     summary,
		Location:    ent.Location,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(duration * float64(time.Hour))),
		Attendees:   ent.Attendees,
		AddMeetLink: ent.AddMeetLink != nil && *ent.AddMeetLink,
	}

	ev, err := e.calendar.CreateEvent(ctx, userID, input)
	if err != nil {
		return Reply{Text: fmt.Sprintf("❌ Erro ao criar evento: %v", err)}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Evento criado com sucesso!\n\n📝 %s\n📅 %s\n🕒 %s\n⏱️ Duração: %s",
		summary, start.Format("02/01/2006"), nlp.FormatTime(ent.Time), nlp.FormatDuration(duration))
	if ent.Location != "" {
		fmt.Fprintf(&b, "\n📍 %s", ent.Location)
	}
	if ev != nil && ev.MeetLink != "" {
		fmt.Fprintf(&b, "\n📹 %s", ev.MeetLink)
	}

	e.sendConfirmation(ctx, userID, ev)

	return Reply{Text: b.String()}, nil
}

// sendConfirmation e-mails the created event to the user's configured
// address, when both a notifier and an address exist. Failures are
// logged, never surfaced to the chat.
func (e *Engine) sendConfirmation(ctx context.Context, userID int64, ev *gcal.Event) {
	if e.notifier == nil || ev == nil {
		return
	}

	email, err := e.db.GetNotifyEmail(userID)
	if err != nil {
		log.Printf("Warning: could not look up notify email for user %d: %v", userID, err)
		return
	}
	if email == "" {
		return
	}

	if err := e.notifier.EventCreated(ctx, email, ev); err != nil {
		log.Printf("Warning: failed to send confirmation email to %s: %v", email, err)
	}
}

func (e *Engine) executeList(ctx context.Context, conv *Conversation) (Reply, error) {
	ent := conv.Pending.Entities
	userID := conv.UserID
	e.resetWith(conv, "")

	loc := e.locFor(userID)
	now := e.localNow(loc)

	var (
		events []gcal.Event
		err    error
		day    time.Time
		header string
		empty  string
	)

	if ent.Date != "" {
		day, err = time.ParseInLocation(nlp.ISODate, ent.Date, loc)
		if err != nil {
			return Reply{Text: fmt.Sprintf("❌ Erro ao listar eventos: data inválida (%s)", ent.Date)}, nil
		}
		events, err = e.calendar.ListEvents(ctx, userID, day, day.Add(24*time.Hour), 10)
		header = fmt.Sprintf("📅 Eventos para %s, %s:\n\n", nlp.FormatWeekday(day.Weekday()), day.Format("02/01/2006"))
		empty = fmt.Sprintf("Não há eventos agendados para %s, %s.", nlp.FormatWeekday(day.Weekday()), day.Format("02/01"))
	} else {
		events, err = e.calendar.ListEvents(ctx, userID, now, now.AddDate(1, 0, 0), 5)
		header = fmt.Sprintf("📅 Próximos eventos a partir de hoje (%s):\n\n", now.Format("02/01"))
		empty = "Não há eventos próximos agendados."
	}
	if err != nil {
		return Reply{Text: fmt.Sprintf("❌ Erro ao listar eventos: %v", err)}, nil
	}

	if len(events) == 0 {
		return Reply{Text: empty}, nil
	}

	var b strings.Builder
	b.WriteString(header)
	for _, ev := range events {
		start := ev.StartTime.In(loc)

		// Show the event's own date when listing a window wider than
		// one day, or when an event spills past the requested day.
		dateStr := ""
		if ent.Date == "" || !sameDay(start, day) {
			dateStr = fmt.Sprintf("%s, %s • ", nlp.FormatWeekday(start.Weekday()), start.Format("02/01"))
		}

		if ev.AllDay {
			fmt.Fprintf(&b, "📌 %s%s (dia todo)\n", dateStr, ev.Summary)
			continue
		}

		end := ev.EndTime.In(loc)
		fmt.Fprintf(&b, "🕒 %s%s - %s: %s", dateStr, start.Format("15:04"), end.Format("15:04"), ev.Summary)
		if ev.MeetLink != "" {
			b.WriteString(" 📹")
		}
		b.WriteString("\n")
	}

	return Reply{Text: b.String()}, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (e *Engine) executeUpdateDuration(ctx context.Context, conv *Conversation) (Reply, error) {
	ent := conv.Pending.Entities
	userID := conv.UserID
	e.resetWith(conv, "")

	ev, err := e.calendar.UpdateEventDuration(ctx, userID, ent.EventID, ent.Duration)
	if err != nil {
		return Reply{Text: fmt.Sprintf("❌ Erro ao atualizar duração: %v", err)}, nil
	}

	loc := e.locFor(userID)
	start := ev.StartTime.In(loc)
	end := ev.EndTime.In(loc)
	return Reply{Text: fmt.Sprintf(
		"✅ Duração atualizada com sucesso!\n\n📝 %s\n📅 %s\n🕒 %s - %s\n⏱️ Nova duração: %s",
		ev.Summary, start.Format("02/01/2006"), start.Format("15:04"), end.Format("15:04"),
		nlp.FormatDuration(ent.Duration))}, nil
}

func (e *Engine) executeDelete(ctx context.Context, conv *Conversation) (Reply, error) {
	eventID := conv.Pending.Entities.EventID
	userID := conv.UserID
	e.resetWith(conv, "")

	if err := e.calendar.DeleteEvent(ctx, userID, eventID); err != nil {
		return Reply{Text: fmt.Sprintf("❌ Erro ao excluir evento: %v", err)}, nil
	}

	return Reply{Text: msgDeleteSuccess}, nil
}

var yesWords = []string{"sim", "s", "yes", "y", "claro", "pode"}
var noWords = []string{"não", "nao", "n", "no"}

func isYes(text string) bool {
	return wordIn(text, yesWords)
}

func isNo(text string) bool {
	return wordIn(text, noWords)
}

func wordIn(text string, words []string) bool {
	normalized := strings.ToLower(strings.TrimRight(strings.TrimSpace(text), ".!"))
	for _, w := range words {
		if normalized == w {
			return true
		}
	}
	return false
}
