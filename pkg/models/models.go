package models

import "strconv"

// Domain models matching the database schema in db/migrations/0001_init.sql

// TimestampLayout is the local-time format used for request_date and
// completion_date values.
const TimestampLayout = "2006-01-02 03:04 PM"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a stored user_type value to a Role, defaulting to customer.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleCustomer
}

type Status string

const (
	StatusReceived       Status = "Received"
	StatusUnderRepair    Status = "Under Repair"
	StatusReadyForPickup Status = "Ready for Pickup"
	StatusCompleted      Status = "Completed"
)

// ParseStatus validates a stored or caller-supplied status string.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusReceived, StatusUnderRepair, StatusReadyForPickup, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

// StampsCompletion reports whether writing this status also writes completion_date.
func (s Status) StampsCompletion() bool {
	return s == StatusReadyForPickup || s == StatusCompleted
}

// Active reports whether the status belongs to the customer-facing "Active" bucket.
func (s Status) Active() bool {
	return s == StatusReceived || s == StatusUnderRepair
}

type ServiceMethod string

const (
	MethodHomePickup        ServiceMethod = "Home Pickup"
	MethodServiceCenterDrop ServiceMethod = "Service Center Drop-off"
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	Phone        string `json:"phone" db:"phone" validate:"required"`
	PasswordHash string `json:"-" db:"password_hash"`
	Name         string `json:"name" db:"name" validate:"required"`
	Role         Role   `json:"user_type" db:"user_type"`
}

// ProfileMap exposes the profile fields as the string-keyed view presentation
// callers consume.
func (u *User) ProfileMap() map[string]string {
	return map[string]string{
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
	}
}

type ServiceRequest struct {
	ID               int64         `json:"request_id" db:"request_id"`
	UserID           int64         `json:"user_id" db:"user_id"`
	ServiceName      string        `json:"service_name" db:"service_name"`
	ServiceCategory  string        `json:"service_category" db:"service_category"`
	IssueDescription string        `json:"issue_description" db:"issue_description"`
	ServiceMethod    ServiceMethod `json:"service_method" db:"service_method"`
	Address          string        `json:"user_address,omitempty" db:"user_address"`
	Phone            string        `json:"user_phone_req" db:"user_phone_req"`
	Status           Status        `json:"status" db:"status"`
	EstimatedPrice   string        `json:"estimated_price,omitempty" db:"estimated_price"`
	EstimatedTime    string        `json:"estimated_time,omitempty" db:"estimated_time"`
	PickupTime       string        `json:"pickup_time,omitempty" db:"pickup_time"`
	RequestDate      string        `json:"request_date" db:"request_date"`
	CompletionDate   string        `json:"completion_date,omitempty" db:"completion_date"`
	TechnicianName   string        `json:"technician_name,omitempty" db:"technician_name"`
	Notes            string        `json:"notes,omitempty" db:"notes"`
}

// Map exposes the record as a column-keyed string map, the boundary contract
// for list and dashboard callers. Absent optional fields map to "".
func (r *ServiceRequest) Map() map[string]string {
	return map[string]string{
		"request_id":        strconv.FormatInt(r.ID, 10),
		"user_id":           strconv.FormatInt(r.UserID, 10),
		"service_name":      r.ServiceName,
		"service_category":  r.ServiceCategory,
		"issue_description": r.IssueDescription,
		"service_method":    string(r.ServiceMethod),
		"user_address":      r.Address,
		"user_phone_req":    r.Phone,
		"status":            string(r.Status),
		"estimated_price":   r.EstimatedPrice,
		"estimated_time":    r.EstimatedTime,
		"pickup_time":       r.PickupTime,
		"request_date":      r.RequestDate,
		"completion_date":   r.CompletionDate,
		"technician_name":   r.TechnicianName,
		"notes":             r.Notes,
	}
}

// Session is the ambient authenticated-caller record.
type Session struct {
	UserID        int64  `json:"user_id"`
	Email         string `json:"user_email"`
	Name          string `json:"user_name"`
	Phone         string `json:"user_phone"`
	Role          Role   `json:"user_type"`
	Authenticated bool   `json:"is_logged_in"`
}

// Anonymous is the session returned when nobody is logged in.
func Anonymous() Session {
	return Session{UserID: -1, Role: RoleCustomer}
}

func (s Session) IsAdmin() bool {
	return s.Authenticated && s.Role == RoleAdmin
}
