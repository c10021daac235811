//go:build !windows

package vd

// NewService is Windows-only; virtual desktops are an immersive shell
// feature.
func NewService() (Service, error) {
	return nil, ErrPlatformUnavailable
}
