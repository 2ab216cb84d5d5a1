package repositories

import (
	"context"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// DestinationRepository defines the interface for destination data operations
type DestinationRepository interface {
	Create(ctx context.Context, destination *models.Destination) error
	GetByID(ctx context.Context, id int) (*models.Destination, error)
	Update(ctx context.Context, destination *models.Destination) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter *models.DestinationFilter) ([]*models.Destination, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Destination, error)
}

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id int) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter *models.BookingFilter) ([]*models.Booking, error)
	GetByUserID(ctx context.Context, userID int, limit, offset int) ([]*models.Booking, error)
}

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int) error
	GetByDestinationID(ctx context.Context, destinationID int, limit, offset int) ([]*models.Review, error)
	GetByUserID(ctx context.Context, userID int, limit, offset int) ([]*models.Review, error)
}

// PlanRepository defines the interface for itinerary plan persistence:
// the plan row itself plus its materialized stops and legs.
type PlanRepository interface {
	Create(ctx context.Context, plan *models.Plan) error
	GetByID(ctx context.Context, id string) (*models.Plan, error)
	UpdateStatus(ctx context.Context, id, status string) error
	MarkFailed(ctx context.Context, id, errorCode, errorContext string) error
	SaveBuildResult(ctx context.Context, plan *models.Plan, result models.PlanResult) error
	ListStops(ctx context.Context, planID string) ([]models.Stop, error)
	ListLegs(ctx context.Context, planID string) ([]models.Leg, error)
	// ClaimNextDraft atomically claims and marks "building" the oldest
	// plan still in "draft" status, using SELECT ... FOR UPDATE SKIP
	// LOCKED so multiple worker processes never race on the same row. It
	// returns nil, nil when no draft plan is waiting.
	ClaimNextDraft(ctx context.Context) (*models.Plan, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id int) (*models.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int) (*models.Payment, error)
	GetByStripePaymentID(ctx context.Context, stripePaymentID string) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, limit, offset int) ([]*models.Payment, error)
}
