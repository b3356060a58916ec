package enums

import "fmt"

// AccessLevel is the permission tier granted to a guild role.
type AccessLevel int

const (
	// AccessLevelNone means no level is configured for any of the caller's roles.
	AccessLevelNone AccessLevel = 0
	// AccessLevelMember can view stockpiles and submit inventory updates.
	AccessLevelMember AccessLevel = 1
	// AccessLevelOfficer can additionally manage stockpiles, quotas, and presets.
	AccessLevelOfficer AccessLevel = 2
)

var validAccessLevels = []AccessLevel{
	AccessLevelMember,
	AccessLevelOfficer,
}

// String implements fmt.Stringer.
func (a AccessLevel) String() string {
	return fmt.Sprintf("%d", int(a))
}

// IsValid reports whether the value is a level that may be stored.
func (a AccessLevel) IsValid() bool {
	for _, candidate := range validAccessLevels {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAccessLevel converts raw input into an AccessLevel.
func ParseAccessLevel(value int) (AccessLevel, error) {
	level := AccessLevel(value)
	if !level.IsValid() {
		return 0, fmt.Errorf("invalid access level %d", value)
	}
	return level, nil
}
