package requests

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/techcare/core/internal/catalog"
	"github.com/techcare/core/pkg/models"
	"github.com/techcare/core/pkg/repository"
)

var (
	// ErrPermissionDenied reports a role-gated operation invoked without the
	// required role or ownership.
	ErrPermissionDenied = errors.New("requests: permission denied")
	// ErrInvalidRequestID reports a malformed (non-numeric) request id from a caller.
	ErrInvalidRequestID = errors.New("requests: invalid request id")
	// ErrUnknownStatus reports a status value outside the lifecycle.
	ErrUnknownStatus = errors.New("requests: unknown status")
	// ErrAddressRequired reports a home-pickup request submitted without an address.
	ErrAddressRequired = errors.New("requests: address required for home pickup")
)

// Service is the request store boundary: customers create and delete their
// own requests, staff mutates status, technician and notes. The lifecycle is
// permissive: any known status may be written from any state.
type Service struct {
	repo    repository.RequestRepo
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewService(repo repository.RequestRepo, cat *catalog.Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, catalog: cat, logger: logger}
}

// CreateInput carries a customer's submission. Category may be left empty
// when the service name is in the catalog.
type CreateInput struct {
	OwnerID          int64
	ServiceName      string
	Category         string
	IssueDescription string
	Method           models.ServiceMethod
	Address          string
	Phone            string
	EstimatedPrice   string
	EstimatedTime    string
	PickupTime       string
}

// Create stores a new request with status Received and a stamped request
// date. Address and pickup time are kept only for home-pickup requests; any
// values supplied for a drop-off are discarded.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	if in.Method == models.MethodHomePickup && in.Address == "" {
		return 0, ErrAddressRequired
	}
	if in.Method != models.MethodHomePickup {
		in.Address = ""
		in.PickupTime = ""
	}

	category := in.Category
	if category == "" && s.catalog != nil {
		category = s.catalog.CategoryFor(in.ServiceName)
	}

	id, err := s.repo.CreateRequest(ctx, &models.ServiceRequest{
		UserID:           in.OwnerID,
		ServiceName:      in.ServiceName,
		ServiceCategory:  category,
		IssueDescription: in.IssueDescription,
		ServiceMethod:    in.Method,
		Address:          in.Address,
		Phone:            in.Phone,
		EstimatedPrice:   in.EstimatedPrice,
		EstimatedTime:    in.EstimatedTime,
		PickupTime:       in.PickupTime,
	})
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	s.logger.Info("service request created",
		slog.Int64("request_id", id), slog.Int64("user_id", in.OwnerID))
	return id, nil
}

// Delete removes a request. The repository itself enforces no ownership; this
// layer requires the caller to own the record or be an administrator. Returns
// false when the id does not exist.
func (s *Service) Delete(ctx context.Context, sess models.Session, id int64) (bool, error) {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete lookup: %w", err)
	}
	if req == nil {
		return false, nil
	}

	if !sess.IsAdmin() && (!sess.Authenticated || req.UserID != sess.UserID) {
		return false, ErrPermissionDenied
	}

	return s.repo.DeleteRequest(ctx, id)
}

// GetByOwner lists a customer's requests newest-first.
func (s *Service) GetByOwner(ctx context.Context, userID int64) ([]models.ServiceRequest, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// GetAll lists every request newest-first. Admin sessions only.
func (s *Service) GetAll(ctx context.Context, sess models.Session) ([]models.ServiceRequest, error) {
	if !sess.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	return s.repo.ListAll(ctx)
}

// UpdateStatus writes a lifecycle state along with optional technician and
// notes. Writing Ready for Pickup or Completed stamps completion_date each
// time it is applied. Returns false when the id does not exist.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status models.Status, technicianName, notes *string) (bool, error) {
	if _, ok := models.ParseStatus(string(status)); !ok {
		return false, ErrUnknownStatus
	}

	return s.repo.UpdateStatus(ctx, id, status, technicianName, notes)
}

// AssignTechnician is the second staff write path: it sets the technician and
// leaves the status unchanged, funneling through UpdateStatus.
func (s *Service) AssignTechnician(ctx context.Context, id int64, technicianName string) (bool, error) {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return false, fmt.Errorf("assign lookup: %w", err)
	}
	if req == nil {
		return false, nil
	}

	return s.repo.UpdateStatus(ctx, id, req.Status, &technicianName, nil)
}

// ParseRequestID converts a caller-supplied id string, rejecting malformed input.
func ParseRequestID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRequestID, s)
	}

	return id, nil
}
