package models

// SeedCategories returns the default category set used to bootstrap a
// brand-new state. Ids are stable strings so that migrated copies of
// the seed set collide (and upsert) rather than duplicate.
func SeedCategories() []Category {
	return []Category{
		{ID: "cat_food", Name: "Food", Kind: TransactionTypeExpense},
		{ID: "cat_transport", Name: "Transport", Kind: TransactionTypeExpense},
		{ID: "cat_housing", Name: "Housing", Kind: TransactionTypeExpense},
		{ID: "cat_leisure", Name: "Leisure", Kind: TransactionTypeExpense},
		{ID: "cat_health", Name: "Health", Kind: TransactionTypeExpense},
		{ID: "cat_education", Name: "Education", Kind: TransactionTypeExpense},
		{ID: "cat_subscriptions", Name: "Subscriptions", Kind: TransactionTypeExpense},
		{ID: "cat_salary", Name: "Salary", Kind: TransactionTypeIncome},
		{ID: "cat_freelance", Name: "Freelance", Kind: TransactionTypeIncome},
	}
}
