// Package logging centralizes slog construction and the attribute vocabulary
// used across the batch pipeline. Components receive a *slog.Logger and tag
// records with the Field* keys so a batch run can be reconstructed from its
// log stream alone.
package logging
