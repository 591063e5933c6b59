package batch

import "checkrun/internal/services"

var (
	errBlankPayee        = services.Wrap(services.ErrValidation, "batch", "validate item", "blank payee", nil)
	errNonPositiveAmount = services.Wrap(services.ErrValidation, "batch", "validate item", "amount must be positive", nil)
)
