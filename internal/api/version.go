package api

// Just define a constant version here
const simulatorVersion = "0.3.0"

// Version returns the version of this library as a string.
func Version() string {
	return simulatorVersion
}
