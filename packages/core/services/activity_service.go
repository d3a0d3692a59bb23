package services

import (
	"core/models"

	"gorm.io/gorm"
)

// ActivityService records the dashboard activity feed and user
// notifications. Recording failures are reported but callers treat them
// as non-fatal; the main write always wins.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{
		db: db,
	}
}

func (s *ActivityService) RecordActivity(userID uint, activityType, description string, data models.Payload) error {
	activity := models.Activity{
		UserID:      userID,
		Type:        activityType,
		Description: description,
		Data:        data,
	}
	return s.db.Create(&activity).Error
}

func (s *ActivityService) Notify(userID uint, notificationType, title, message string, data models.Payload) error {
	notification := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data:    data,
	}
	return s.db.Create(&notification).Error
}

func (s *ActivityService) GetUserActivities(userID uint, limit int) ([]models.Activity, error) {
	var activities []models.Activity

	result := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities)

	if result.Error != nil {
		return nil, result.Error
	}

	return activities, nil
}

func (s *ActivityService) GetRecentActivities(limit int) ([]models.Activity, error) {
	var activities []models.Activity

	result := s.db.Order("created_at DESC").
		Limit(limit).
		Find(&activities)

	if result.Error != nil {
		return nil, result.Error
	}

	return activities, nil
}

func (s *ActivityService) GetUserNotifications(userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	result := query.Order("created_at DESC").
		Limit(limit).
		Find(&notifications)

	if result.Error != nil {
		return nil, result.Error
	}

	return notifications, nil
}

func (s *ActivityService) CountUnreadNotifications(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *ActivityService) MarkNotificationRead(userID, notificationID uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ActivityService) MarkAllNotificationsRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
