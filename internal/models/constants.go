package models

// CategoryUncategorized is assigned to ledger rows without a category.
const CategoryUncategorized = "Uncategorized"

// File permissions
const (
	PermissionDataFile  = 0644
	PermissionDirectory = 0750
)
