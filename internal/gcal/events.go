package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

var ErrEventNotFound = errors.New("google calendar event not found")

// IsEventNotFound returns true when a Google Calendar event no longer exists.
func IsEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

// EventInput represents the input for creating a calendar event
type EventInput struct {
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Attendees   []string // Email addresses of attendees
	AddMeetLink bool
}

// Event represents a single Google Calendar event.
type Event struct {
	ID        string
	Summary   string
	Location  string
	StartTime time.Time
	EndTime   time.Time
	AllDay    bool
	HTMLLink  string
	MeetLink  string
}

func parseGoogleEventTimes(item *calendar.Event, loc *time.Location) (time.Time, time.Time, bool, error) {
	if item == nil || item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event is missing start or end")
	}

	// All-day events use Date instead of DateTime.
	if item.Start.Date != "" {
		startDate, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day start date: %w", err)
		}
		endDate, err := time.ParseInLocation("2006-01-02", item.End.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day end date: %w", err)
		}
		return startDate, endDate, true, nil
	}

	if item.Start.DateTime == "" || item.End.DateTime == "" {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event datetime is missing")
	}

	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse start datetime: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse end datetime: %w", err)
	}

	return startTime, endTime, false, nil
}

// meetLinkFromItem returns the Google Meet link of an event, or "".
func meetLinkFromItem(item *calendar.Event) string {
	if item == nil {
		return ""
	}
	if item.ConferenceData != nil {
		for _, entry := range item.ConferenceData.EntryPoints {
			if entry != nil && entry.EntryPointType == "video" && entry.Uri != "" {
				return entry.Uri
			}
		}
	}
	return item.HangoutLink
}

func eventFromItem(item *calendar.Event, loc *time.Location) (*Event, error) {
	startTime, endTime, allDay, err := parseGoogleEventTimes(item, loc)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        item.Id,
		Summary:   item.Summary,
		Location:  item.Location,
		StartTime: startTime,
		EndTime:   endTime,
		AllDay:    allDay,
		HTMLLink:  item.HtmlLink,
		MeetLink:  meetLinkFromItem(item),
	}, nil
}

// CreateEvent creates a new event on the user's primary calendar and
// returns the created event, including the Meet link when one was
// requested.
func (c *Client) CreateEvent(ctx context.Context, userID int64, input EventInput) (*Event, error) {
	service, err := c.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	// RFC3339 format includes timezone offset, so Google Calendar can infer the timezone
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.StartTime.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: input.EndTime.Format(time.RFC3339),
		},
	}

	if len(input.Attendees) > 0 {
		attendees := make([]*calendar.EventAttendee, len(input.Attendees))
		for i, email := range input.Attendees {
			attendees[i] = &calendar.EventAttendee{Email: email}
		}
		event.Attendees = attendees
	}

	if input.AddMeetLink {
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		}
	}

	call := service.Events.Insert("primary", event).SendUpdates("all")
	if input.AddMeetLink {
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return eventFromItem(created, input.StartTime.Location())
}

// ListEvents returns up to max events in [from, to) ordered by start time.
func (c *Client) ListEvents(ctx context.Context, userID int64, from, to time.Time, max int64) ([]Event, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: end is before start")
	}

	service, err := c.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := service.Events.List("primary").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		MaxResults(max).
		SingleEvents(true).
		ShowDeleted(false).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return collectEvents(events.Items, from.Location()), nil
}

// FindEventsByQuery free-text searches the user's upcoming events.
func (c *Client) FindEventsByQuery(ctx context.Context, userID int64, query string, from time.Time) ([]Event, error) {
	service, err := c.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := service.Events.List("primary").
		Q(query).
		TimeMin(from.Format(time.RFC3339)).
		SingleEvents(true).
		ShowDeleted(false).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return collectEvents(events.Items, from.Location()), nil
}

func collectEvents(items []*calendar.Event, loc *time.Location) []Event {
	var result []Event
	for _, item := range items {
		if item == nil || item.Status == "cancelled" {
			continue
		}
		ev, err := eventFromItem(item, loc)
		if err != nil {
			// Skip malformed events rather than failing the whole request.
			continue
		}
		result = append(result, *ev)
	}
	return result
}

// GetEvent retrieves a single event from the user's primary calendar.
func (c *Client) GetEvent(ctx context.Context, userID int64, eventID string) (*Event, error) {
	if eventID == "" {
		return nil, fmt.Errorf("event id is required")
	}

	service, err := c.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := service.Events.Get("primary", eventID).Do()
	if err != nil {
		if isGoneErr(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	// Cancelled means the event was deleted/cancelled on Google Calendar side.
	if item.Status == "cancelled" {
		return nil, ErrEventNotFound
	}

	return eventFromItem(item, time.Now().Location())
}

// UpdateEventDuration moves the event's end so the event lasts the
// given number of hours, keeping the start untouched.
func (c *Client) UpdateEventDuration(ctx context.Context, userID int64, eventID string, hours float64) (*Event, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	service, err := c.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := service.Events.Get("primary", eventID).Do()
	if err != nil {
		if isGoneErr(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if item.Status == "cancelled" {
		return nil, ErrEventNotFound
	}
	if item.Start == nil || item.Start.DateTime == "" {
		return nil, fmt.Errorf("cannot change duration of an all-day event")
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start datetime: %w", err)
	}

	end := start.Add(time.Duration(hours * float64(time.Hour)))
	item.End = &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)}

	updated, err := service.Events.Update("primary", eventID, item).SendUpdates("all").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return eventFromItem(updated, start.Location())
}

// DeleteEvent deletes an event from the user's primary calendar.
func (c *Client) DeleteEvent(ctx context.Context, userID int64, eventID string) error {
	service, err := c.serviceFor(ctx, userID)
	if err != nil {
		return err
	}

	if err := service.Events.Delete("primary", eventID).SendUpdates("all").Do(); err != nil {
		if isGoneErr(err) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

func isGoneErr(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && (gErr.Code == http.StatusNotFound || gErr.Code == http.StatusGone)
}
