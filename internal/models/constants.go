package models

// CategoryUncategorized is assigned when no tag clears the similarity threshold.
const CategoryUncategorized = "Uncategorized"

// DateLayout is the wire format of Transaction.Date.
const DateLayout = "2006-01-02"

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
)
