//go:build darwin && !cgo

package devices

import "errors"

func nativeScreens() ([]Screen, error) {
	return nil, errors.New("native screen enumeration requires cgo on darwin")
}
