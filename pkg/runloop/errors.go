package runloop

import "errors"

var ErrAlreadyRunning = errors.New("runloop: loop already has a consumer")
