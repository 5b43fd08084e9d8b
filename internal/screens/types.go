package screens

// Screen represents the different screens/views in the application
type Screen int

// Screen constants define all possible screens in the application
const (
	ScreenMain Screen = iota
	ScreenDriveSelect
	ScreenChannels
	ScreenSettings
	ScreenAbout
	ScreenError
)

// String returns the string representation of a screen
func (s Screen) String() string {
	switch s {
	case ScreenMain:
		return "Main Menu"
	case ScreenDriveSelect:
		return "Drive Selection"
	case ScreenChannels:
		return "Channels"
	case ScreenSettings:
		return "Facility Settings"
	case ScreenAbout:
		return "About"
	case ScreenError:
		return "Error"
	default:
		return "Unknown"
	}
}
