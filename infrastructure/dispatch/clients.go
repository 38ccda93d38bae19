package dispatch

import (
	"context"

	"github.com/felixgeelhaar/launchpad/domain/effect"
)

// NotificationService is the interface to the notification service.
// Implementations create one notification for one user per call; the
// dispatcher fans multi-recipient effects out as independent calls.
type NotificationService interface {
	CreateNotification(ctx context.Context, userID string, p effect.NotifyPayload) error
}

// XPService is the interface to the XP/achievement webhook service.
type XPService interface {
	AwardXP(ctx context.Context, p effect.AwardXPPayload) error
}

// IdentityService is the interface to the identity service's role grants.
type IdentityService interface {
	GrantRole(ctx context.Context, p effect.ElevateRolePayload) error
}

// notificationRequest is the wire shape of the notification service call.
type notificationRequest struct {
	UserID   string            `json:"userId"`
	Type     string            `json:"type"`
	Priority string            `json:"priority"`
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Link     string            `json:"link,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// xpRequest is the wire shape of the XP webhook call. The event kind is
// carried in the payload; the service routes on it.
type xpRequest struct {
	Event    string `json:"event"`
	UserID   string `json:"userId"`
	EntityID string `json:"entityId"`
}

// roleRequest is the wire shape of the role-grant call.
type roleRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// HTTPNotificationService posts notifications to the notification service.
type HTTPNotificationService struct {
	sender   *Sender
	endpoint Endpoint
}

// NewHTTPNotificationService creates a notification client.
func NewHTTPNotificationService(sender *Sender, endpoint Endpoint) *HTTPNotificationService {
	if endpoint.Name == "" {
		endpoint.Name = "notifications"
	}
	return &HTTPNotificationService{sender: sender, endpoint: endpoint}
}

// CreateNotification posts one notification for one user.
func (s *HTTPNotificationService) CreateNotification(ctx context.Context, userID string, p effect.NotifyPayload) error {
	return s.sender.Post(ctx, s.endpoint, notificationRequest{
		UserID:   userID,
		Type:     p.Type,
		Priority: string(p.Priority),
		Title:    p.Title,
		Message:  p.Message,
		Link:     p.Link,
		Metadata: p.Metadata,
	})
}

// HTTPXPService posts XP-award webhooks.
type HTTPXPService struct {
	sender   *Sender
	endpoint Endpoint
}

// NewHTTPXPService creates an XP webhook client.
func NewHTTPXPService(sender *Sender, endpoint Endpoint) *HTTPXPService {
	if endpoint.Name == "" {
		endpoint.Name = "xp"
	}
	return &HTTPXPService{sender: sender, endpoint: endpoint}
}

// AwardXP posts one XP-award event.
func (s *HTTPXPService) AwardXP(ctx context.Context, p effect.AwardXPPayload) error {
	return s.sender.Post(ctx, s.endpoint, xpRequest{
		Event:    p.Event,
		UserID:   p.UserID,
		EntityID: p.EntityID,
	})
}

// HTTPIdentityService posts role grants to the identity service.
type HTTPIdentityService struct {
	sender   *Sender
	endpoint Endpoint
}

// NewHTTPIdentityService creates a role-grant client.
func NewHTTPIdentityService(sender *Sender, endpoint Endpoint) *HTTPIdentityService {
	if endpoint.Name == "" {
		endpoint.Name = "identity"
	}
	return &HTTPIdentityService{sender: sender, endpoint: endpoint}
}

// GrantRole posts one role grant.
func (s *HTTPIdentityService) GrantRole(ctx context.Context, p effect.ElevateRolePayload) error {
	return s.sender.Post(ctx, s.endpoint, roleRequest{
		UserID: p.UserID,
		Role:   p.Role,
	})
}
