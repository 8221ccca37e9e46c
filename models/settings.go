package models

// UserSettings is the per-user preference bag of the desktop agent.
// Created with the account, updated in place, deleted with the account.
// It has no influence on rule evaluation.
type UserSettings struct {
	// UserID is the owning account.
	UserID int64 `json:"-"`

	// AlwaysOnTop keeps the agent window above other windows.
	AlwaysOnTop bool `json:"always_on_top"`

	// AllowNotifications enables desktop notifications for threat events.
	AllowNotifications bool `json:"allow_notifications"`

	// Theme is the UI theme name.
	Theme string `json:"theme"`

	// RunAtStartup launches the agent with the operating system session.
	RunAtStartup bool `json:"run_at_startup"`
}

// TableName returns the name of the database table
// associated with the UserSettings model.
func (s UserSettings) TableName() string {
	return "user_settings"
}

// DefaultSettings returns the settings row written at registration time.
func DefaultSettings(userID int64) UserSettings {
	return UserSettings{
		UserID:             userID,
		AllowNotifications: true,
		Theme:              "system",
	}
}
