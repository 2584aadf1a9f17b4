package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/techcare/core/pkg/models"
)

const requestColumns = `request_id, user_id, service_name, service_category, issue_description,
	service_method, user_address, user_phone_req, status, estimated_price, estimated_time,
	pickup_time, request_date, completion_date, technician_name, notes`

func (r *SQLiteRepo) CreateRequest(ctx context.Context, req *models.ServiceRequest) (int64, error) {
	if req == nil {
		return 0, fmt.Errorf("request is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO service_requests (
		user_id, service_name, service_category, issue_description, service_method,
		user_address, user_phone_req, status, estimated_price, estimated_time,
		pickup_time, request_date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.UserID, req.ServiceName, req.ServiceCategory, req.IssueDescription,
		string(req.ServiceMethod), nullable(req.Address), req.Phone,
		string(models.StatusReceived), nullable(req.EstimatedPrice),
		nullable(req.EstimatedTime), nullable(req.PickupTime), now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetRequest(ctx context.Context, id int64) (*models.ServiceRequest, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM service_requests WHERE request_id = ?`, id)

	var req models.ServiceRequest
	if err := scanRequest(row.Scan, &req); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &req, nil
}

// ListByOwner returns the owner's requests newest-first by id.
func (r *SQLiteRepo) ListByOwner(ctx context.Context, userID int64) ([]models.ServiceRequest, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+requestColumns+` FROM service_requests WHERE user_id = ? ORDER BY request_id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

// ListAll returns every request newest-first by id. Role gating happens in the
// service layer, not here.
func (r *SQLiteRepo) ListAll(ctx context.Context) ([]models.ServiceRequest, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+requestColumns+` FROM service_requests ORDER BY request_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

// UpdateStatus writes the status and, when supplied, technician and notes.
// Writing Ready for Pickup or Completed re-stamps completion_date every time,
// not only on the first transition.
func (r *SQLiteRepo) UpdateStatus(ctx context.Context, id int64, status models.Status, technicianName, notes *string) (bool, error) {
	sets := []string{"status = ?"}
	args := []any{string(status)}

	if technicianName != nil {
		sets = append(sets, "technician_name = ?")
		args = append(args, *technicianName)
	}
	if notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *notes)
	}
	if status.StampsCompletion() {
		sets = append(sets, "completion_date = ?")
		args = append(args, now())
	}
	args = append(args, id)

	res, err := r.conn.Exec(ctx,
		`UPDATE service_requests SET `+strings.Join(sets, ", ")+` WHERE request_id = ?`, args...)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		r.logger.Info("request status updated",
			slog.Int64("request_id", id), slog.String("status", string(status)))
	}

	return n > 0, nil
}

func (r *SQLiteRepo) DeleteRequest(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM service_requests WHERE request_id = ?`, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanRequest(scan func(dest ...any) error, req *models.ServiceRequest) error {
	var method, status string
	var address, price, estTime, pickup, completion, technician, notes sql.NullString
	if err := scan(&req.ID, &req.UserID, &req.ServiceName, &req.ServiceCategory,
		&req.IssueDescription, &method, &address, &req.Phone, &status, &price,
		&estTime, &pickup, &req.RequestDate, &completion, &technician, &notes); err != nil {
		return err
	}

	req.ServiceMethod = models.ServiceMethod(method)
	req.Status = models.Status(status)
	req.Address = address.String
	req.EstimatedPrice = price.String
	req.EstimatedTime = estTime.String
	req.PickupTime = pickup.String
	req.CompletionDate = completion.String
	req.TechnicianName = technician.String
	req.Notes = notes.String
	return nil
}

func collectRequests(rows *sql.Rows) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	for rows.Next() {
		var req models.ServiceRequest
		if err := scanRequest(rows.Scan, &req); err != nil {
			return nil, err
		}

		out = append(out, req)
	}

	return out, rows.Err()
}
