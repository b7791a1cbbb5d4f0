package model

// ReconcileReport summarizes one reconciliation sweep.
type ReconcileReport struct {
	Scanned   int `json:"scanned"`
	Skipped   int `json:"skipped"`
	Unchanged int `json:"unchanged"`
	Unmapped  int `json:"unmapped"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Advanced  int `json:"advanced"`
	Failed    int `json:"failed"`
}
