package model

import "time"

// EntityType names the kind of record a request targets.
type EntityType string

const (
	EntityAttendanceSession EntityType = "attendance_session"
	EntityLessonPlan        EntityType = "lesson_plan"
)

// RequestKind is what the requester wants done to the entity.
type RequestKind string

const (
	RequestReopen RequestKind = "reopen"
	RequestDelete RequestKind = "delete"
)

// RequestStatus represents the lifecycle state of a request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// EntityRef identifies an attendance session or lesson plan.
type EntityRef struct {
	Type EntityType `json:"entity_type"`
	ID   int        `json:"entity_id"`
}

// Request is a reopen/delete request for an attendance session or lesson plan.
type Request struct {
	ID           int           `json:"id"`
	EntityType   EntityType    `json:"entity_type"`
	EntityID     int           `json:"entity_id"`
	Kind         RequestKind   `json:"kind"`
	Reason       string        `json:"reason"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	DecidedAt    *time.Time    `json:"decided_at,omitempty"`
	DecisionNote string        `json:"decision_note,omitempty"`
}

// Entity returns the reference to the request's target.
func (r Request) Entity() EntityRef {
	return EntityRef{Type: r.EntityType, ID: r.EntityID}
}

// RequestInput is the payload of a create-request call.
type RequestInput struct {
	EntityType EntityType  `json:"entity_type"`
	EntityID   int         `json:"entity_id"`
	Kind       RequestKind `json:"kind"`
	Reason     string      `json:"reason"`
}

// Entity returns the reference to the input's target.
func (in RequestInput) Entity() EntityRef {
	return EntityRef{Type: in.EntityType, ID: in.EntityID}
}

// Decision is the action a reviewer applies to a pending request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)
