package ticket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vanphal/internal/model"
	"vanphal/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service owns the support-ticket inbox. It is a plain CRUD collection,
// independent of the pricing and order pipeline.
type Service struct {
	store  store.Store
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewService creates a new ticket service.
func NewService(st store.Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger.With().Str("service", "ticket").Logger(),
	}
}

// Create opens a new ticket. It starts open, flagged unread for the back
// office.
func (s *Service) Create(ctx context.Context, user *model.User, orderID, subject, message string) (*model.Ticket, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}

	t := model.Ticket{
		ID:          "T-" + uuid.NewString(),
		UserID:      user.ID,
		OrderID:     orderID,
		UserName:    user.Name,
		Email:       user.Email,
		Subject:     subject,
		Message:     message,
		Status:      model.TicketOpen,
		Replies:     []model.TicketReply{},
		UnreadAdmin: true,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	tickets = append([]model.Ticket{t}, tickets...)
	if err := s.save(ctx, tickets); err != nil {
		return nil, err
	}

	s.logger.Info().Str("ticket_id", t.ID).Str("user_id", user.ID).Msg("ticket created")
	return &t, nil
}

// Reply appends a message to a ticket. Replying re-opens a closed ticket and
// marks the conversation unread for the opposite party.
func (s *Service) Reply(ctx context.Context, ticketID string, author *model.User, message string) (*model.Ticket, error) {
	if author == nil {
		return nil, model.ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tickets {
		if tickets[i].ID != ticketID {
			continue
		}
		reply := model.TicketReply{
			ID:         "R-" + uuid.NewString(),
			AuthorID:   author.ID,
			AuthorName: author.Name,
			AuthorRole: author.Role,
			Message:    message,
			CreatedAt:  time.Now().UTC(),
		}
		tickets[i].Replies = append(tickets[i].Replies, reply)
		tickets[i].Status = model.TicketOpen
		tickets[i].UnreadAdmin = author.Role != model.RoleAdmin
		tickets[i].UnreadUser = author.Role == model.RoleAdmin

		if err := s.save(ctx, tickets); err != nil {
			return nil, err
		}
		return &tickets[i], nil
	}
	return nil, model.ErrTicketNotFound
}

// Close marks a ticket closed.
func (s *Service) Close(ctx context.Context, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.all(ctx)
	if err != nil {
		return err
	}
	for i := range tickets {
		if tickets[i].ID == ticketID {
			tickets[i].Status = model.TicketClosed
			return s.save(ctx, tickets)
		}
	}
	return model.ErrTicketNotFound
}

// MarkRead clears the unread flag for the given role.
func (s *Service) MarkRead(ctx context.Context, ticketID string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.all(ctx)
	if err != nil {
		return err
	}
	for i := range tickets {
		if tickets[i].ID == ticketID {
			if role == model.RoleAdmin {
				tickets[i].UnreadAdmin = false
			} else {
				tickets[i].UnreadUser = false
			}
			return s.save(ctx, tickets)
		}
	}
	return model.ErrTicketNotFound
}

// ListByUser returns the user's tickets, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	tickets, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	mine := []model.Ticket{}
	for _, t := range tickets {
		if t.UserID == userID {
			mine = append(mine, t)
		}
	}
	return mine, nil
}

// ListAll returns every ticket for the back office.
func (s *Service) ListAll(ctx context.Context) ([]model.Ticket, error) {
	return s.all(ctx)
}

func (s *Service) all(ctx context.Context) ([]model.Ticket, error) {
	var tickets []model.Ticket
	if _, err := s.store.Load(ctx, store.KeyTickets, &tickets); err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	if tickets == nil {
		tickets = []model.Ticket{}
	}
	return tickets, nil
}

func (s *Service) save(ctx context.Context, tickets []model.Ticket) error {
	if err := s.store.Save(ctx, store.KeyTickets, tickets); err != nil {
		return fmt.Errorf("failed to save tickets: %w", err)
	}
	return nil
}
