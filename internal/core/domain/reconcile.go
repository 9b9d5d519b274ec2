package domain

// CategoryProducts is the stored product back-reference list of a category.
type CategoryProducts struct {
	CategoryID string
	ProductIDs []string
}

type ReconcileReport struct {
	Scanned int
	Updated int
	Dropped int
	Added   int
}
