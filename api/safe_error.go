package api

import (
	"fintrack/config"
)

// SafeErrorMessage keeps store error details out of responses in release
// mode.
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
