package billing

import "errors"

var ErrPlanNotFound = errors.New("billing plan not found")
