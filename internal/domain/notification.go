package domain

// NotificationKind discriminates pushed notifications
type NotificationKind string

const (
	NotificationLandsChanged NotificationKind = "lands_changed"
	NotificationLevelChanged NotificationKind = "level_changed"
)

// Notification is a server push translated into engine terms. Exactly one of
// LandIDs (LandsChanged) or Level (LevelChanged) is meaningful.
type Notification struct {
	Kind    NotificationKind
	LandIDs []int64
	Level   int
}

// NewLandsChanged creates a LandsChanged notification
func NewLandsChanged(landIDs []int64) Notification {
	return Notification{Kind: NotificationLandsChanged, LandIDs: landIDs}
}

// NewLevelChanged creates a LevelChanged notification
func NewLevelChanged(level int) Notification {
	return Notification{Kind: NotificationLevelChanged, Level: level}
}
