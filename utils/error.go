package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrorRenderUnavailable signals that an export document could not be
// produced; callers degrade to "export unavailable" instead of failing hard.
var ErrorRenderUnavailable = errors.New("export render unavailable")
