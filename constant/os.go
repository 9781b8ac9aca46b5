package constant

// Values of runtime.GOOS this application special-cases.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
