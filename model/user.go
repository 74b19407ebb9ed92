package model

// LanguagePreferenceKey and NotificationPreferenceKey are the preference
// names used by the user directory.
const (
	LanguagePreferenceKey     = "pref-lang"
	NotificationPreferenceKey = "notification_pref"
)

// User is a digest recipient as returned by the user directory. It is read
// but never modified by the notifier.
type User struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Preferences Preferences `json:"preferences"`
}

// Preferences is the subset of user preferences the notifier reads.
type Preferences struct {
	// Language is a language code such as "fr" or "pt-BR". Empty means the
	// user has not chosen one.
	Language         string `json:"pref-lang,omitempty"`
	NotificationPref string `json:"notification_pref,omitempty"`
}

// DisplayName returns the user's name, falling back to the username.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}

	return u.Username
}
