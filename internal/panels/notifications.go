package panels

import (
	"context"
	"net/url"

	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

// Notifications lists all notifications. This endpoint returns a bare array
// with no envelope.
func (s *Service) Notifications(ctx context.Context) ([]types.Notification, error) {
	var notifications []types.Notification
	if err := s.upstream.GetBare(ctx, upstream.EndpointNotifications, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// SetNotificationRead flips the read flag on a notification.
func (s *Service) SetNotificationRead(ctx context.Context, id string, read bool) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id is required")
	}
	isRead := 0
	if read {
		isRead = 1
	}
	payload := map[string]any{
		"notification_id": id,
		"is_read":         isRead,
	}
	return s.upstream.PutJSON(ctx, upstream.EndpointNotifications, payload, nil)
}

// DeleteNotification removes a notification.
func (s *Service) DeleteNotification(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id is required")
	}
	query := url.Values{"notification_id": []string{id}}
	return s.upstream.Delete(ctx, upstream.EndpointNotifications, query)
}
