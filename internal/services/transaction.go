package services

import "context"

// TransactionRunner runs fn atomically: every repository write made with
// the context fn receives commits or rolls back as one unit. It is
// satisfied by pkg/database.MongoDB.
type TransactionRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
