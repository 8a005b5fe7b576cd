package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/mailer"
	"cinema-tickets/pkg/utils"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// referencePattern accepts every reference the generator can produce,
// with a little slack on the numeric tail.
var referencePattern = regexp.MustCompile(`^BK\d{6,12}$`)

type TicketService interface {
	// GetTicket resolves a booking reference to its printable ticket.
	// The reference itself is the lookup capability.
	GetTicket(ctx context.Context, reference string) (*response.TicketResponse, error)

	// RenderTicket formats the ticket as the plain-text download body.
	RenderTicket(ctx context.Context, reference string) (string, error)

	// TicketQR encodes the booking reference as a PNG QR code.
	TicketQR(ctx context.Context, reference string) ([]byte, error)

	// EmailTicket sends the rendered ticket to the booking owner's
	// email address.
	EmailTicket(ctx context.Context, reference string) error

	// SendConfirmation delivers the post-booking email in the
	// background. Failures are logged, never surfaced.
	SendConfirmation(booking *entity.Booking)
}

type ticketService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   *mailer.Mailer
	log    *zap.Logger
}

func NewTicketService(repo *repository.Repository, config *utils.Config, mail *mailer.Mailer, log *zap.Logger) TicketService {
	return &ticketService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "ticket")),
	}
}

// ValidateTicketReference checks the shape of a booking reference before
// any lookup: "BK" + 6-12 digits, 8-15 characters overall.
func ValidateTicketReference(reference string) error {
	if len(reference) < 8 || len(reference) > 15 {
		return fmt.Errorf("%w: reference must be 8-15 characters", ErrInvalidInput)
	}
	if !referencePattern.MatchString(reference) {
		return fmt.Errorf("%w: reference must match BK followed by digits", ErrInvalidInput)
	}
	return nil
}

func (s *ticketService) GetTicket(ctx context.Context, reference string) (*response.TicketResponse, error) {
	booking, err := s.findBooking(ctx, reference)
	if err != nil {
		return nil, err
	}

	return s.ticketFromBooking(booking), nil
}

func (s *ticketService) RenderTicket(ctx context.Context, reference string) (string, error) {
	booking, err := s.findBooking(ctx, reference)
	if err != nil {
		return "", err
	}

	return s.renderText(booking), nil
}

func (s *ticketService) TicketQR(ctx context.Context, reference string) ([]byte, error) {
	booking, err := s.findBooking(ctx, reference)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(booking.Reference, qrcode.Medium, 256)
	if err != nil {
		s.log.Error("Failed to encode QR code",
			zap.Error(err),
			zap.String("reference", booking.Reference),
		)
		return nil, fmt.Errorf("encode QR for %s: %w", booking.Reference, err)
	}

	return png, nil
}

func (s *ticketService) EmailTicket(ctx context.Context, reference string) error {
	booking, err := s.findBooking(ctx, reference)
	if err != nil {
		return err
	}

	if !s.mail.Enabled() {
		return fmt.Errorf("%w: email delivery is not configured", ErrInvalidInput)
	}

	user, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		return fmt.Errorf("email ticket %s: %w", reference, err)
	}
	if user == nil {
		return fmt.Errorf("owner of booking %s not found: %w", reference, repository.ErrNotFound)
	}

	subject := fmt.Sprintf("Your ticket %s - %s", booking.Reference, booking.MovieTitle)
	if err := s.mail.Send(user.Email, subject, s.renderText(booking)); err != nil {
		return fmt.Errorf("email ticket %s: %w", reference, err)
	}

	s.log.Info("Ticket emailed",
		zap.String("reference", booking.Reference),
		zap.String("user_id", user.ID.String()),
	)

	return nil
}

func (s *ticketService) SendConfirmation(booking *entity.Booking) {
	if !s.mail.Enabled() {
		return
	}

	// Detached from the request, the booking is already committed.
	go func() {
		ctx := context.Background()

		user, err := s.repo.User.FindByID(ctx, booking.UserID)
		if err != nil || user == nil {
			s.log.Warn("Skipping confirmation email, owner lookup failed",
				zap.Error(err),
				zap.String("reference", booking.Reference),
			)
			return
		}

		subject := fmt.Sprintf("Booking confirmed %s - %s", booking.Reference, booking.MovieTitle)
		if err := s.mail.Send(user.Email, subject, s.renderText(booking)); err != nil {
			s.log.Warn("Confirmation email failed",
				zap.Error(err),
				zap.String("reference", booking.Reference),
			)
		}
	}()
}

func (s *ticketService) findBooking(ctx context.Context, reference string) (*entity.Booking, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))

	if err := ValidateTicketReference(reference); err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("ticket %s not found: %w", reference, repository.ErrNotFound)
	}

	return booking, nil
}

func (s *ticketService) ticketFromBooking(booking *entity.Booking) *response.TicketResponse {
	return &response.TicketResponse{
		Reference:  booking.Reference,
		CinemaName: s.config.Venue.CinemaName,
		ScreenName: s.config.Venue.ScreenName,
		MovieTitle: booking.MovieTitle,
		ShowDate:   booking.ShowDate.Format("2006-01-02"),
		ShowTime:   booking.ShowTime,
		Seats:      booking.Seats,
		TotalPrice: booking.TotalPrice,
		BookedAt:   booking.CreatedAt,
	}
}

func (s *ticketService) renderText(booking *entity.Booking) string {
	var b strings.Builder

	line := strings.Repeat("=", 40)
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%s\n", s.config.Venue.CinemaName))
	b.WriteString(fmt.Sprintf("%s\n", s.config.Venue.ScreenName))
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("Movie:     %s\n", booking.MovieTitle))
	b.WriteString(fmt.Sprintf("Date:      %s\n", booking.ShowDate.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Time:      %s\n", booking.ShowTime))
	b.WriteString(fmt.Sprintf("Seats:     %s\n", strings.Join(booking.Seats, ", ")))
	b.WriteString(fmt.Sprintf("Total:     $%.2f\n", booking.TotalPrice))
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("Booking reference: %s\n", booking.Reference))
	b.WriteString(fmt.Sprintf("Booked at: %s\n", booking.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString(line + "\n")

	return b.String()
}
