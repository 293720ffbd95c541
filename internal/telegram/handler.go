package telegram

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/gotd/td/tg"

	"github.com/ricardomaia/agendador/internal/database"
	"github.com/ricardomaia/agendador/internal/dialog"
)

const msgInternalError = "Ocorreu um erro ao processar sua mensagem. Por favor, tente novamente ou use /start para recomeçar."

// Dialogs is the conversation layer the handler routes turns into.
type Dialogs interface {
	HandleText(ctx context.Context, userID int64, text string) (dialog.Reply, error)
	HandleCallback(ctx context.Context, userID int64, data string) (dialog.Reply, error)
	HandleCommand(ctx context.Context, userID int64, command, args string) (dialog.Reply, error)
}

// Handler processes incoming Telegram updates (direct messages only)
type Handler struct {
	db      *database.DB
	dialogs Dialogs

	mu    sync.RWMutex
	api   *tg.Client
	users map[int64]*tg.User // Cache of user info
}

// NewHandler creates a new Telegram update handler
func NewHandler(db *database.DB, dialogs Dialogs) *Handler {
	return &Handler{
		db:      db,
		dialogs: dialogs,
		users:   make(map[int64]*tg.User),
	}
}

// BindAPI attaches the raw API client once the connection is up
func (h *Handler) BindAPI(api *tg.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.api = api
}

// HandleUpdate processes a Telegram update
func (h *Handler) HandleUpdate(ctx context.Context, update tg.UpdatesClass) {
	switch u := update.(type) {
	case *tg.Updates:
		h.cacheEntities(u.Users)
		for _, upd := range u.Updates {
			h.handleSingleUpdate(ctx, upd)
		}
	case *tg.UpdatesCombined:
		h.cacheEntities(u.Users)
		for _, upd := range u.Updates {
			h.handleSingleUpdate(ctx, upd)
		}
	case *tg.UpdateShort:
		h.handleSingleUpdate(ctx, u.Update)
	case *tg.UpdateShortMessage:
		h.handleMessageText(ctx, u.UserID, u.Message)
	case *tg.UpdateShortChatMessage:
		// Group messages not supported - only direct chats
		return
	}
}

// cacheEntities caches user information from update envelopes
func (h *Handler) cacheEntities(users []tg.UserClass) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			h.users[user.ID] = user
		}
	}
}

func (h *Handler) cachedUser(userID int64) (*tg.User, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	u, ok := h.users[userID]
	return u, ok
}

// handleSingleUpdate processes a single update
func (h *Handler) handleSingleUpdate(ctx context.Context, update tg.UpdateClass) {
	switch u := update.(type) {
	case *tg.UpdateNewMessage:
		h.handleNewMessage(ctx, u.Message)
	case *tg.UpdateBotCallbackQuery:
		h.handleCallbackQuery(ctx, u)
	}
}

// handleNewMessage processes a new direct message
func (h *Handler) handleNewMessage(ctx context.Context, msg tg.MessageClass) {
	message, ok := msg.(*tg.Message)
	if !ok || message.Out {
		return
	}

	text := message.Message
	if text == "" {
		return
	}

	peer, ok := message.PeerID.(*tg.PeerUser)
	if !ok {
		return
	}

	h.handleMessageText(ctx, peer.UserID, text)
}

// handleMessageText runs one user turn and sends the reply
func (h *Handler) handleMessageText(ctx context.Context, userID int64, text string) {
	senderName := fmt.Sprintf("User %d", userID)
	if user, ok := h.cachedUser(userID); ok {
		senderName = getUserName(user)
		if err := h.db.UpsertUser(userID, user.Username, user.FirstName); err != nil {
			fmt.Printf("Warning: failed to upsert user %d: %v\n", userID, err)
		}
	} else if err := h.db.UpsertUser(userID, "", ""); err != nil {
		fmt.Printf("Warning: failed to upsert user %d: %v\n", userID, err)
	}

	fmt.Printf("[Telegram DM: %s] %s\n", senderName, truncateText(text, 100))

	var reply dialog.Reply
	var err error
	if command, args, ok := parseCommand(text); ok {
		reply, err = h.dialogs.HandleCommand(ctx, userID, command, args)
	} else {
		reply, err = h.dialogs.HandleText(ctx, userID, text)
	}
	if err != nil {
		fmt.Printf("Telegram: Error handling message from %d: %v\n", userID, err)
		reply = dialog.Reply{Text: msgInternalError}
	}

	h.sendReply(ctx, userID, reply)
}

// handleCallbackQuery processes an inline button press
func (h *Handler) handleCallbackQuery(ctx context.Context, u *tg.UpdateBotCallbackQuery) {
	api := h.boundAPI()
	if api != nil {
		// Stop the client-side loading spinner; the answer carries no text
		if _, err := api.MessagesSetBotCallbackAnswer(ctx, &tg.MessagesSetBotCallbackAnswerRequest{
			QueryID: u.QueryID,
		}); err != nil {
			fmt.Printf("Warning: failed to answer callback query: %v\n", err)
		}
	}

	reply, err := h.dialogs.HandleCallback(ctx, u.UserID, string(u.Data))
	if err != nil {
		fmt.Printf("Telegram: Error handling callback from %d: %v\n", u.UserID, err)
		reply = dialog.Reply{Text: msgInternalError}
	}

	h.sendReply(ctx, u.UserID, reply)
}

func (h *Handler) boundAPI() *tg.Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.api
}

// sendReply delivers a dialog reply to the user, with inline buttons when present
func (h *Handler) sendReply(ctx context.Context, userID int64, reply dialog.Reply) {
	if reply.Text == "" {
		return
	}

	api := h.boundAPI()
	if api == nil {
		fmt.Println("Telegram: API not ready, dropping reply")
		return
	}

	peer := &tg.InputPeerUser{UserID: userID}
	if user, ok := h.cachedUser(userID); ok {
		peer.AccessHash = user.AccessHash
	}

	req := &tg.MessagesSendMessageRequest{
		Peer:     peer,
		Message:  reply.Text,
		RandomID: randomID(),
	}
	if len(reply.Buttons) > 0 {
		req.ReplyMarkup = buildInlineMarkup(reply.Buttons)
	}

	if _, err := api.MessagesSendMessage(ctx, req); err != nil {
		fmt.Printf("Telegram: Failed to send message to %d: %v\n", userID, err)
	}
}

// buildInlineMarkup renders dialog buttons as a single row of callback buttons
func buildInlineMarkup(buttons []dialog.Button) *tg.ReplyInlineMarkup {
	row := tg.KeyboardButtonRow{}
	for _, b := range buttons {
		row.Buttons = append(row.Buttons, &tg.KeyboardButtonCallback{
			Text: b.Label,
			Data: []byte(b.Data),
		})
	}
	return &tg.ReplyInlineMarkup{Rows: []tg.KeyboardButtonRow{row}}
}

// parseCommand splits a "/command args" message. The command name is
// lowercased and a trailing @BotName mention is dropped.
func parseCommand(text string) (command, args string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	head, rest, _ := strings.Cut(text[1:], " ")
	if head == "" {
		return "", "", false
	}
	if at := strings.Index(head, "@"); at >= 0 {
		head = head[:at]
	}

	return strings.ToLower(head), strings.TrimSpace(rest), true
}

func randomID() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// getUserName returns a display name for a user
func getUserName(user *tg.User) string {
	if user.FirstName != "" {
		if user.LastName != "" {
			return user.FirstName + " " + user.LastName
		}
		return user.FirstName
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	return fmt.Sprintf("User %d", user.ID)
}

// truncateText shortens text for logging
func truncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
