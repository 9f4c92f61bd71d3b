//go:build !linux

package collector

import "errors"

// NewProcProvider is linux-only; other platforms use gopsutil or ps.
func NewProcProvider() (Provider, error) {
	return nil, errors.New("the proc source is only available on linux")
}
